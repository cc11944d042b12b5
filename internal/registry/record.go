package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentx-labs/plugx/internal/security"
	"go.yaml.in/yaml/v3"
)

// RecordFile is the filename of the global configuration record inside the
// home directory.
const RecordFile = "registry.yaml"

// Record is the persisted global configuration.
type Record struct {
	// EnabledPlugins is the load order.
	EnabledPlugins []string `yaml:"enabled_plugins"`

	// PluginConfig maps extension name to key to override value.
	PluginConfig map[string]map[string]interface{} `yaml:"plugin_config,omitempty"`

	Security security.Flags `yaml:"security"`

	// HostVersion overrides the host version reported to the compatibility
	// gate. Empty falls back to the configured default.
	HostVersion string `yaml:"host_version,omitempty"`
}

// LoadRecord reads the record at path. A missing file yields an empty
// record with nothing granted.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Record{}, nil
		}
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}

	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	return &r, nil
}

// SaveRecord writes r back to path, creating the parent directory.
func SaveRecord(path string, r *Record) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing registry %s: %w", path, err)
	}
	return nil
}

// IsEnabled reports whether name is in the persisted enabled set.
func (r *Record) IsEnabled(name string) bool {
	for _, n := range r.EnabledPlugins {
		if n == name {
			return true
		}
	}
	return false
}

// AddEnabled appends name to the enabled set. It reports whether the record
// changed.
func (r *Record) AddEnabled(name string) bool {
	if r.IsEnabled(name) {
		return false
	}
	r.EnabledPlugins = append(r.EnabledPlugins, name)
	return true
}

// RemoveEnabled removes name from the enabled set. It reports whether the
// record changed.
func (r *Record) RemoveEnabled(name string) bool {
	for i, n := range r.EnabledPlugins {
		if n == name {
			r.EnabledPlugins = append(r.EnabledPlugins[:i], r.EnabledPlugins[i+1:]...)
			return true
		}
	}
	return false
}

// Overrides returns the configuration overrides for name, possibly nil.
func (r *Record) Overrides(name string) map[string]interface{} {
	return r.PluginConfig[name]
}

// SetOverride stores a configuration override for name.
func (r *Record) SetOverride(name, key string, value interface{}) {
	if r.PluginConfig == nil {
		r.PluginConfig = make(map[string]map[string]interface{})
	}
	if r.PluginConfig[name] == nil {
		r.PluginConfig[name] = make(map[string]interface{})
	}
	r.PluginConfig[name][key] = value
}
