package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentx-labs/plugx/internal/branding"
	"go.yaml.in/yaml/v3"
)

// Store reads and writes descriptors under a plugins root directory. The
// descriptor for extension "name" lives at <root>/<name>/plugin.yaml.
type Store struct {
	root string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the plugins root directory.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the directory that holds the named extension.
func (s *Store) Dir(name string) string {
	return filepath.Join(s.root, name)
}

// Path returns the descriptor path for the named extension.
func (s *Store) Path(name string) string {
	return filepath.Join(s.root, name, branding.ManifestFile())
}

// Load reads, validates and decodes the descriptor of the named extension.
// It returns an error matching ErrNotFound when the file does not exist and
// one matching ErrInvalid when validation fails.
func (s *Store) Load(name string) (*Manifest, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return LoadFile(s.Path(name))
}

// Save serializes m over the descriptor of the named extension. The whole
// file is rewritten.
func (s *Store) Save(name string, m *Manifest) error {
	if err := checkName(name); err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("saving manifest for %q: manifest is nil", name)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest %s: %w", name, err)
	}

	if err := os.MkdirAll(s.Dir(name), 0o755); err != nil {
		return fmt.Errorf("creating extension directory %s: %w", s.Dir(name), err)
	}
	path := s.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// List returns the names of all directories under the root that contain a
// descriptor, sorted. A missing root yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plugins directory %s: %w", s.root, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(s.Path(e.Name())); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// LoadFile reads, validates and decodes a descriptor at an explicit path.
func LoadFile(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// Parse validates data against the schema and decodes it. source names the
// descriptor in error messages.
func Parse(data []byte, source string) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, &InvalidError{Source: source, Err: err}
	}
	if !result.Valid {
		return nil, &InvalidError{Source: source, Issues: result.Issues}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &InvalidError{Source: source, Err: err}
	}
	return &m, nil
}

// checkName rejects names that would escape the plugins root.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return &InvalidError{
			Source: fmt.Sprintf("extension name %q", name),
			Issues: []ValidationIssue{{Message: "must be a single path element"}},
		}
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
