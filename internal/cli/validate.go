package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/plugx/internal/branding"
	"github.com/agentx-labs/plugx/internal/compat"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
	"github.com/spf13/cobra"
)

// errInvalidManifest makes plugx validate exit non-zero after reporting.
var errInvalidManifest = errors.New("manifest is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate an extension descriptor",
	Long: `Validate a plugin.yaml, or the plugin.yaml inside a directory, against the
descriptor schema, then report whether this host would admit it.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, branding.ManifestFile())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return errInvalidManifest
	}
	if !result.Valid {
		fmt.Fprintf(out, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(out, "    - %s\n", issue)
		}
		return errInvalidManifest
	}

	m, err := manifest.LoadFile(path)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return errInvalidManifest
	}
	fmt.Fprintf(out, "  [ OK ] Valid manifest: %s (v%s)\n", m.Name, m.Version)

	a, err := openApp(cmd)
	if err != nil {
		fmt.Fprintf(out, "  [WARN] Cannot check against this host: %v\n", err)
		return nil
	}
	defer a.Close()

	host := a.registry.HostVersion()
	if ok, why := compat.Check(m.MinHostVersion, m.MaxHostVersion, host); ok {
		fmt.Fprintf(out, "  [ OK ] Compatible with host %s\n", host)
	} else {
		fmt.Fprintf(out, "  [WARN] %s\n", why)
	}
	if ok, why := security.Check(m.Security.RequiredPermissions, a.registry.Security()); ok {
		fmt.Fprintf(out, "  [ OK ] Permissions granted\n")
	} else {
		fmt.Fprintf(out, "  [WARN] %s\n", why)
	}
	return nil
}
