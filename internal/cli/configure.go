package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var configureCmd = &cobra.Command{
	Use:   "configure <name> <key> <value>",
	Short: "Set a configuration value of an extension",
	Long: `Set one configuration key of an extension and persist it to its plugin.yaml.
The value is read as a YAML scalar, so 10 is a number and true a boolean;
quote it to keep it a string.`,
	Example: `  plugx configure social batch_size 10
  plugx configure mock greeting '"Hi"'`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, key := args[0], args[1]
		value, err := parseValue(args[2])
		if err != nil {
			return err
		}

		a, err := loadAll(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ensureLoaded(cmd.Context(), name); err != nil {
			return fmt.Errorf("cannot configure %s: %s", name, reason(err))
		}
		if err := a.registry.Configure(name, key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s.%s = %v\n", name, key, value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func parseValue(raw string) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("parsing value %q: %w", raw, err)
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return nil, fmt.Errorf("value %q must be a scalar", raw)
	case nil:
		return raw, nil
	}
	return v, nil
}
