package cli

import (
	"errors"
	"fmt"

	"github.com/agentx-labs/plugx/internal/factory"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

// reason shortens a load error for one-line display.
func reason(err error) string {
	var ge *factory.GateError
	if errors.As(err, &ge) {
		return ge.Gate + ": " + ge.Reason
	}
	return err.Error()
}
