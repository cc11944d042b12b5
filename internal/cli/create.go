package cli

import (
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/plugx/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	createPermissions []string
	createMinHost     string
	createOutputDir   string
	createDescription string
	createAuthor      string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new extension",
	Long: `Generate a descriptor, a Go skeleton and a README for a new extension. By
default the files go to ~/.plugx/plugins/<name>.`,
	Example: `  plugx create weather-feed
  plugx create weather-feed --permission network_access --output-dir ./weather-feed`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringSliceVar(&createPermissions, "permission", nil, "Required permission (repeatable)")
	createCmd.Flags().StringVar(&createMinHost, "min-host-version", "", "Lowest supported host version (default: this host)")
	createCmd.Flags().StringVarP(&createOutputDir, "output-dir", "o", "", "Directory to write into")
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Extension description")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Extension author")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	if filepath.Base(name) != name || name == "." || name == ".." {
		return fmt.Errorf("invalid extension name %q", name)
	}
	if err := scaffold.ValidatePermissions(createPermissions); err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	minHost := createMinHost
	if minHost == "" {
		minHost = a.registry.HostVersion()
	}
	data := scaffold.NewScaffoldData(name, minHost, createPermissions)
	if createDescription != "" {
		data.Description = createDescription
	}
	data.Author = createAuthor

	outDir := createOutputDir
	if outDir == "" {
		outDir = a.manifests.Dir(name)
	}

	result, err := scaffold.Generate(data, outDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created extension %s at %s/\n", name, result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintln(out, "\nWarnings:")
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintf(out, "  1. Implement extension.go and register %s in the host catalog\n", data.TypeName)
	fmt.Fprintf(out, "  2. Run '%s validate %s'\n", data.CLIName, result.OutputDir)
	fmt.Fprintf(out, "  3. Run '%s enable %s'\n", data.CLIName, name)
	return nil
}
