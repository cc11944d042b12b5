package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered extensions",
	Long:  `List every extension under ~/.plugx/plugins with its version and whether it loads, is enabled, or was rejected.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents one extension for display.
type listEntry struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Loaded  bool   `json:"loaded"`
	Enabled bool   `json:"enabled"`
	Status  string `json:"status"`
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadAll(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := a.manifests.List()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range a.registry.Record().EnabledPlugins {
		if !seen[n] {
			names = append(names, n)
			seen[n] = true
		}
	}

	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No extensions found. Run 'plugx init' to install the samples.")
		return nil
	}

	entries := make([]listEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, describe(a, name))
	}

	if listJSON {
		return printJSON(cmd, entries)
	}
	return printListTable(cmd, entries)
}

func describe(a *app, name string) listEntry {
	e := listEntry{Name: name}
	if ext, ok := a.registry.Get(name); ok {
		e.Version = ext.Version()
		e.Loaded = true
		e.Enabled = ext.IsEnabled()
		e.Status = "active"
		if !e.Enabled {
			e.Status = "disabled"
		}
		return e
	}

	m, err := a.registry.Factory().Inspect(name)
	if m != nil {
		e.Version = m.Version
	}
	switch {
	case err != nil:
		e.Status = "rejected (" + reason(err) + ")"
	case a.registry.Record().IsEnabled(name):
		e.Status = "failed to load"
	default:
		e.Status = "available"
	}
	return e
}

func printListTable(cmd *cobra.Command, entries []listEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tVERSION\tSTATUS")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, version, e.Status)
	}
	return w.Flush()
}
