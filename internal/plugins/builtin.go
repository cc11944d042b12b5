// Package plugins wires the extensions compiled into the binary into a
// factory catalog and seeds their descriptors into a plugins directory.
package plugins

import (
	"errors"
	"fmt"

	"github.com/agentx-labs/plugx/internal/factory"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/plugins/mock"
	"github.com/agentx-labs/plugx/internal/plugins/social"
)

type builtin struct {
	name       string
	descriptor []byte
	register   func(c *factory.Catalog)
}

var builtins = []builtin{
	{mock.Name, mock.Descriptor, func(c *factory.Catalog) { c.Register(mock.Name, mock.New) }},
	{social.Name, social.Descriptor, func(c *factory.Catalog) { c.Register(social.Name, social.New) }},
}

// Register adds every built-in extension to c.
func Register(c *factory.Catalog) {
	for _, b := range builtins {
		b.register(c)
	}
}

// Catalog returns a catalog holding every built-in extension.
func Catalog() *factory.Catalog {
	c := factory.NewCatalog()
	Register(c)
	return c
}

// Seed writes the descriptor of each built-in extension that has none in
// store yet. It returns the names written.
func Seed(store *manifest.Store) ([]string, error) {
	var written []string
	for _, b := range builtins {
		_, err := store.Load(b.name)
		if err == nil || !errors.Is(err, manifest.ErrNotFound) {
			continue
		}
		m, err := manifest.Parse(b.descriptor, b.name+" (built-in)")
		if err != nil {
			return written, fmt.Errorf("built-in descriptor %s: %w", b.name, err)
		}
		if err := store.Save(b.name, m); err != nil {
			return written, err
		}
		written = append(written, b.name)
	}
	return written, nil
}
