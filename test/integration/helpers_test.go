//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/plugx/internal/installer"
	"github.com/agentx-labs/plugx/internal/logging"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/plugins"
	"github.com/agentx-labs/plugx/internal/registry"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/agentx-labs/plugx/internal/userdata"
)

// testEnv holds an isolated home directory.
type testEnv struct {
	Layout  userdata.Layout
	Backend string // state backend kind: file or bolt
}

// setupTestEnv creates a home under t.TempDir, points PLUGX_HOME at it and
// installs the built-in descriptors.
func setupTestEnv(t *testing.T, backend string) *testEnv {
	t.Helper()

	root := filepath.Join(t.TempDir(), "home")
	t.Setenv("PLUGX_HOME", root)
	t.Setenv("PLUGX_PLUGINS", "")

	layout, err := userdata.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := userdata.Init(os.Stderr, layout); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := plugins.Seed(manifest.NewStore(layout.PluginsDir())); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return &testEnv{Layout: layout, Backend: backend}
}

// session is one host process: a registry over an open backend.
type session struct {
	Registry *registry.Registry
	backend  state.Backend
}

// open starts a session, as a CLI run would.
func (e *testEnv) open(t *testing.T, inst installer.Installer) *session {
	t.Helper()

	path := e.Layout.StateDir()
	if e.Backend == state.BackendBolt {
		path = e.Layout.StateDBPath()
	}
	backend, err := state.OpenBackend(e.Backend, path)
	if err != nil {
		t.Fatalf("OpenBackend(%s): %v", e.Backend, err)
	}
	if inst == nil {
		inst = installer.Noop{}
	}
	reg, err := registry.New(registry.Options{
		RecordPath:  e.Layout.RecordPath(),
		Manifests:   manifest.NewStore(e.Layout.PluginsDir()),
		Catalog:     plugins.Catalog(),
		Installer:   inst,
		State:       backend,
		HostVersion: "1.5.0",
		Logger:      logging.Discard(),
	})
	if err != nil {
		backend.Close()
		t.Fatalf("registry.New: %v", err)
	}
	return &session{Registry: reg, backend: backend}
}

// close ends the session the way a CLI run does.
func (s *session) close(t *testing.T) {
	t.Helper()
	if err := s.Registry.Close(); err != nil {
		t.Errorf("registry Close: %v", err)
	}
	if err := s.backend.Close(); err != nil {
		t.Errorf("backend Close: %v", err)
	}
}

// grantNetwork rewrites the security flags in the record.
func (e *testEnv) grantNetwork(t *testing.T, allow bool) {
	t.Helper()
	rec, err := registry.LoadRecord(e.Layout.RecordPath())
	if err != nil {
		t.Fatalf("LoadRecord: %v", err)
	}
	rec.Security.AllowNetworkAccess = allow
	if err := registry.SaveRecord(e.Layout.RecordPath(), rec); err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
