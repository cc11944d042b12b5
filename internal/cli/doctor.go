package cli

import (
	"fmt"

	"github.com/agentx-labs/plugx/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the plugx home",
	Long: `Check the home directory layout and permissions, then try every discovered
extension descriptor against the host version and security flags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := userdata.Resolve()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		problems := userdata.Check(out, layout, doctorFix)

		a, err := openApp(cmd)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] Cannot open registry: %v\n", err)
			return fmt.Errorf("%d problem(s) found", problems+1)
		}
		defer a.Close()

		fmt.Fprintln(out, "Extensions check:")
		names, err := a.manifests.List()
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] Cannot list extensions: %v\n", err)
			problems++
		}
		if err == nil && len(names) == 0 {
			fmt.Fprintln(out, "  [INFO] No extensions installed")
		}
		for _, name := range names {
			m, err := a.registry.Factory().Inspect(name)
			if err != nil {
				fmt.Fprintf(out, "  [WARN] %s: %s\n", name, reason(err))
				if a.registry.Record().IsEnabled(name) {
					problems++
				}
				continue
			}
			fmt.Fprintf(out, "  [ OK ] %s (v%s)\n", name, m.Version)
		}
		for _, name := range a.registry.Record().EnabledPlugins {
			if _, err := a.manifests.Load(name); err != nil {
				fmt.Fprintf(out, "  [FAIL] %s is enabled but cannot be read: %v\n", name, err)
				problems++
			}
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Fprintln(out, "\nNo problems found.")
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories and files and tighten permissions")
	rootCmd.AddCommand(doctorCmd)
}
