package cli

import (
	"fmt"

	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/plugins"
	"github.com/agentx-labs/plugx/internal/userdata"
	"github.com/spf13/cobra"
)

var initNoSamples bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the plugx home directory",
	Long: `Create ~/.plugx with its plugins and state directories, a default registry.yaml
and config.yaml, and install the descriptors of the built-in extensions.
Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := userdata.Resolve()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Initializing %s\n", layout.Root)
		if err := userdata.Init(out, layout); err != nil {
			return err
		}

		if !initNoSamples {
			written, err := plugins.Seed(manifest.NewStore(layout.PluginsDir()))
			if err != nil {
				return err
			}
			for _, name := range written {
				fmt.Fprintf(out, "  [ OK ] Installed built-in extension %s\n", name)
			}
		}

		fmt.Fprintln(out, "\nHome initialized successfully.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initNoSamples, "no-samples", false, "Skip installing the built-in extension descriptors")
	rootCmd.AddCommand(initCmd)
}
