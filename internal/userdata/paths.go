package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/plugx/internal/branding"
)

// Directory and file names inside the home directory.
const (
	PluginsDir  = "plugins"
	StateDir    = "state"
	StateDBFile = "state.db"
	RecordFile  = "registry.yaml"
	ConfigFile  = "config.yaml"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// Layout resolves every path under one home directory.
type Layout struct {
	Root string
}

// Resolve returns the layout rooted at PLUGX_HOME, or ~/.plugx when the
// variable is unset.
func Resolve() (Layout, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return Layout{Root: v}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Layout{}, fmt.Errorf("resolving home directory: %w", err)
	}
	return Layout{Root: filepath.Join(home, branding.HomeDir())}, nil
}

// PluginsDir returns the directory holding one subdirectory per extension.
// PLUGX_PLUGINS overrides it.
func (l Layout) PluginsDir() string {
	if v := os.Getenv(branding.EnvVar("PLUGINS")); v != "" {
		return v
	}
	return filepath.Join(l.Root, PluginsDir)
}

// StateDir returns the directory of per-extension state files.
func (l Layout) StateDir() string { return filepath.Join(l.Root, StateDir) }

// StateDBPath returns the bolt database used by the bolt state backend.
func (l Layout) StateDBPath() string { return filepath.Join(l.Root, StateDBFile) }

// RecordPath returns the global registry record.
func (l Layout) RecordPath() string { return filepath.Join(l.Root, RecordFile) }

// ConfigPath returns the host settings file.
func (l Layout) ConfigPath() string { return filepath.Join(l.Root, ConfigFile) }
