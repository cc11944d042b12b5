package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentx-labs/plugx/internal/branding"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyStateBackend   = "state.backend"
	KeyInstallCommand = "installer.install_command"
	KeyListCommand    = "installer.list_command"
	KeyHostVersion    = "host_version"
)

var defaults = map[string]string{
	KeyLogLevel:       "info",
	KeyLogFormat:      "text",
	KeyStateBackend:   state.BackendFile,
	KeyInstallCommand: "",
	KeyListCommand:    "",
	KeyHostVersion:    "",
}

// ErrUnknownKey is returned by Set for keys that are not settings.
var ErrUnknownKey = errors.New("unknown setting")

// Settings is the host settings file plus environment overrides.
type Settings struct {
	v    *viper.Viper
	path string
}

// Load reads the settings file at path. A missing file is not an error;
// defaults and environment overrides still apply.
func Load(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}
	return &Settings{v: v, path: path}, nil
}

// Path returns the settings file.
func (s *Settings) Path() string { return s.path }

// Get returns a setting by key. Returns empty string if not set.
func (s *Settings) Get(key string) string {
	return s.v.GetString(key)
}

// Set writes a key-value pair and saves the settings file.
func (s *Settings) Set(key, value string) error {
	if _, ok := defaults[key]; !ok {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownKey, key, strings.Join(Keys(), ", "))
	}
	if key == KeyStateBackend && value != state.BackendFile && value != state.BackendBolt {
		return fmt.Errorf("%s must be %q or %q", key, state.BackendFile, state.BackendBolt)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// Keys returns every known setting key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Settings) LogLevel() string       { return s.Get(KeyLogLevel) }
func (s *Settings) LogFormat() string      { return s.Get(KeyLogFormat) }
func (s *Settings) StateBackend() string   { return s.Get(KeyStateBackend) }
func (s *Settings) InstallCommand() string { return s.Get(KeyInstallCommand) }
func (s *Settings) ListCommand() string    { return s.Get(KeyListCommand) }

// HostVersion returns the configured host version, or the built-in default.
func (s *Settings) HostVersion() string {
	if v := s.Get(KeyHostVersion); v != "" {
		return v
	}
	return branding.DefaultHostVersion()
}
