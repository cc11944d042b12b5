package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable <name>",
	Short: "Enable an extension",
	Long: `Load an extension, add it to the enabled list in ~/.plugx/registry.yaml and run
its enable hook. Enabling an enabled extension succeeds without changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a, err := loadAll(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ensureLoaded(cmd.Context(), name); err != nil {
			return fmt.Errorf("cannot enable %s: %s", name, reason(err))
		}
		if err := a.registry.Enable(name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Enabled %s\n", name)
		return nil
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <name>",
	Short: "Disable an extension",
	Long: `Remove an extension from the enabled list and run its disable hook. An
extension that no longer loads is removed from the list directly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		a, err := loadAll(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ensureLoaded(cmd.Context(), name); err != nil {
			rec := a.registry.Record()
			if !rec.RemoveEnabled(name) {
				return fmt.Errorf("cannot disable %s: %s", name, reason(err))
			}
			if err := a.registry.SaveRecord(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the enabled list (it does not load: %s)\n", name, reason(err))
			return nil
		}
		if err := a.registry.Disable(name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Disabled %s\n", name)
		return nil
	},
}
