package state

import (
	"fmt"
	"path/filepath"
)

// Backend loads and saves whole per-extension maps.
type Backend interface {
	// Load returns the stored map for name. A name with no stored state
	// yields an empty map and a nil error.
	Load(name string) (map[string]interface{}, error)

	// Save replaces the stored map for name.
	Save(name string, data map[string]interface{}) error

	// Close releases backend resources.
	Close() error
}

// Backend identifiers accepted by OpenBackend.
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

// OpenBackend opens the backend named kind. For "file", path is the state
// directory; for "bolt", path is the database file.
func OpenBackend(kind, path string) (Backend, error) {
	switch kind {
	case "", BackendFile:
		return NewFileBackend(path), nil
	case BackendBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("unknown state backend %q: supported backends are %q and %q", kind, BackendFile, BackendBolt)
	}
}

func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid extension name %q", name)
	}
	return nil
}
