package userdata

import (
	"fmt"
	"io"
	"os"
)

// Default content for registry.yaml.
const defaultRecordContent = `# Extensions loaded at startup, in load order.
enabled_plugins: []

# Per-extension configuration overrides: name -> key -> value.
plugin_config: {}

# Host security flags checked against each manifest's required_permissions.
security:
  allow_network_access: false
  allow_file_access: false
  allow_system_access: false
  sanitize_all_inputs: false
`

// Default content for config.yaml.
const defaultConfigContent = `log:
  level: info
  format: text
state:
  backend: file
# installer:
#   install_command: pip install
#   list_command: pip freeze
`

// Init creates the home directory structure. It prints progress messages to
// w; existing items are skipped with a message.
func Init(w io.Writer, l Layout) error {
	if err := ensureDir(w, l.Root, DirPermNormal); err != nil {
		return err
	}
	if err := ensureDir(w, l.PluginsDir(), DirPermNormal); err != nil {
		return err
	}
	if err := ensureDir(w, l.StateDir(), DirPermSecure); err != nil {
		return err
	}
	if err := ensureFile(w, l.RecordPath(), defaultRecordContent, FilePermNormal); err != nil {
		return err
	}
	if err := ensureFile(w, l.ConfigPath(), defaultConfigContent, FilePermNormal); err != nil {
		return err
	}
	return nil
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll applies the umask.
	if err := chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}

// ensureFile creates a file with content if it doesn't exist.
func ensureFile(w io.Writer, path, content string, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
