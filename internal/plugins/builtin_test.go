package plugins

import (
	"context"
	"testing"

	"github.com/agentx-labs/plugx/internal/factory"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
)

func TestSeed(t *testing.T) {
	store := manifest.NewStore(t.TempDir())

	written, err := Seed(store)
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("Seed() wrote %v, want both built-ins", written)
	}

	names, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "mock" || names[1] != "social" {
		t.Errorf("List() = %v", names)
	}

	again, err := Seed(store)
	if err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second Seed() wrote %v", again)
	}
}

func TestSeed_KeepsEditedDescriptor(t *testing.T) {
	store := manifest.NewStore(t.TempDir())
	if _, err := Seed(store); err != nil {
		t.Fatal(err)
	}
	m, err := store.Load("mock")
	if err != nil {
		t.Fatal(err)
	}
	m.Config["greeting"] = "Howdy"
	if err := store.Save("mock", m); err != nil {
		t.Fatal(err)
	}

	if _, err := Seed(store); err != nil {
		t.Fatal(err)
	}
	m, err = store.Load("mock")
	if err != nil {
		t.Fatal(err)
	}
	if m.Config["greeting"] != "Howdy" {
		t.Errorf("Seed() overwrote an edited descriptor: %v", m.Config["greeting"])
	}
}

func TestCatalog_BuildsBuiltins(t *testing.T) {
	store := manifest.NewStore(t.TempDir())
	if _, err := Seed(store); err != nil {
		t.Fatal(err)
	}

	f := factory.New(factory.Options{
		Manifests:   store,
		Catalog:     Catalog(),
		HostVersion: func() string { return "1.0.0" },
		Security:    func() security.Flags { return security.Flags{AllowNetworkAccess: true} },
	})
	for _, name := range []string{"mock", "social"} {
		ext, err := f.Build(context.Background(), name)
		if err != nil {
			t.Fatalf("Build(%s) error: %v", name, err)
		}
		if ext.Name() != name {
			t.Errorf("Build(%s).Name() = %q", name, ext.Name())
		}
	}
}
