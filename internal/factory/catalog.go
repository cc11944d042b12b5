package factory

import (
	"fmt"
	"sort"

	"github.com/agentx-labs/plugx/internal/extension"
)

// Catalog is the registration table mapping extension names to
// constructors. It is filled once at startup and then only read.
type Catalog struct {
	entries map[string][]extension.Constructor
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{entries: make(map[string][]extension.Constructor)}
}

// Register adds ctor under name. Registering a name twice is not an error
// here; Resolve reports it as ambiguous.
func (c *Catalog) Register(name string, ctor extension.Constructor) {
	c.entries[name] = append(c.entries[name], ctor)
}

// Resolve returns the single constructor registered under name.
func (c *Catalog) Resolve(name string) (extension.Constructor, error) {
	ctors := c.entries[name]
	switch len(ctors) {
	case 0:
		return nil, fmt.Errorf("%w for %q", ErrNoImplementation, name)
	case 1:
		return ctors[0], nil
	default:
		return nil, fmt.Errorf("%w for %q (%d)", ErrAmbiguousImplementation, name, len(ctors))
	}
}

// Names returns every registered name, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
