package factory

import (
	"errors"
	"testing"

	"github.com/agentx-labs/plugx/internal/extension"
	"github.com/agentx-labs/plugx/internal/manifest"
)

func nopCtor(m *manifest.Manifest, env extension.Env) (extension.Extension, error) {
	return newTestExt(m, env), nil
}

func TestCatalog_Resolve(t *testing.T) {
	c := NewCatalog()
	c.Register("one", nopCtor)
	c.Register("twice", nopCtor)
	c.Register("twice", nopCtor)

	if _, err := c.Resolve("one"); err != nil {
		t.Errorf("Resolve(one) error: %v", err)
	}
	if _, err := c.Resolve("none"); !errors.Is(err, ErrNoImplementation) {
		t.Errorf("Resolve(none) error = %v, want ErrNoImplementation", err)
	}
	if _, err := c.Resolve("twice"); !errors.Is(err, ErrAmbiguousImplementation) {
		t.Errorf("Resolve(twice) error = %v, want ErrAmbiguousImplementation", err)
	}

	names := c.Names()
	if len(names) != 2 || names[0] != "one" || names[1] != "twice" {
		t.Errorf("Names() = %v", names)
	}
}
