package cli

import (
	"fmt"

	"github.com/agentx-labs/plugx/internal/extension"
	"github.com/agentx-labs/plugx/internal/surface"
	"github.com/spf13/cobra"
)

var renderJSON bool

var renderCmd = &cobra.Command{
	Use:   "render [name]",
	Short: "Render the interface of enabled extensions",
	Long: `Ask every enabled extension, or only the named one, to describe its settings
interface. An extension that fails to render is reported and unloaded; the
others still render.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "Output the widgets as JSON")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := loadAll(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var (
		rec  surface.Recorder
		s    extension.Surface = surface.NewText(cmd.OutOrStdout())
		errs []error
	)
	if renderJSON {
		s = &rec
	}

	if len(args) == 1 {
		name := args[0]
		ext, ok := a.registry.Get(name)
		if !ok || !ext.IsEnabled() {
			return fmt.Errorf("%s is not enabled", name)
		}
		if err := ext.RenderInterface(s); err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
	} else {
		if a.registry.Len() == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No enabled extensions.")
		}
		errs = a.registry.Render(s)
	}

	for _, err := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
	if renderJSON {
		if rec.Widgets == nil {
			rec.Widgets = []surface.Widget{}
		}
		return printJSON(cmd, rec.Widgets)
	}
	return nil
}
