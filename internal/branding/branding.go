// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName            string `yaml:"cli_name"`
	DisplayName        string `yaml:"display_name"`
	Description        string `yaml:"description"`
	HomeDir            string `yaml:"home_dir"`
	EnvPrefix          string `yaml:"env_prefix"`
	GoModule           string `yaml:"go_module"`
	ManifestFile       string `yaml:"manifest_file"`
	DefaultHostVersion string `yaml:"default_host_version"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:            "plugx",
			DisplayName:        "PlugX",
			Description:        "Extension runtime with manifest-gated plugin lifecycle management",
			HomeDir:            ".plugx",
			EnvPrefix:          "PLUGX",
			GoModule:           "github.com/agentx-labs/plugx",
			ManifestFile:       "plugin.yaml",
			DefaultHostVersion: "1.0.0",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "plugx").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".plugx").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "PLUGX").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the host's Go module path, used in generated code.
func GoModule() string { load(); return defaults.GoModule }

// ManifestFile returns the descriptor file name expected in every extension
// directory (e.g., "plugin.yaml").
func ManifestFile() string { load(); return defaults.ManifestFile }

// DefaultHostVersion is the host version used when neither the registry
// record nor the settings file declares one.
func DefaultHostVersion() string { load(); return defaults.DefaultHostVersion }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "PLUGX_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
