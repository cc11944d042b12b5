package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// FileBackend stores each extension's map in <dir>/<name>.yaml.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend writing under dir. The directory is
// created on first save.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Path returns the state file for name.
func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.dir, name+".yaml")
}

func (b *FileBackend) Load(name string) (map[string]interface{}, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := b.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("reading state %s: %w", path, err)
	}

	m := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", path, err)
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	return m, nil
}

// Save writes the map to a temporary file and renames it over the state
// file so a crash never leaves a truncated map behind.
func (b *FileBackend) Save(name string, data map[string]interface{}) error {
	if err := checkName(name); err != nil {
		return err
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling state for %s: %w", name, err)
	}
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("creating state directory %s: %w", b.dir, err)
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing state for %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing state for %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, b.Path(name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing state %s: %w", b.Path(name), err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
