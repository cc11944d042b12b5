package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetFlags clears package-level flag values left by a previous run.
func resetFlags() {
	logLevelFlag = ""
	listJSON = false
	infoJSON = false
	renderJSON = false
	versionShort = false
	versionJSON = false
	doctorFix = false
	initNoSamples = false
	createPermissions = nil
	createMinHost = ""
	createOutputDir = ""
	createDescription = ""
	createAuthor = ""
}

// run executes the root command and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// newHome points PLUGX_HOME at a fresh directory and runs init.
func newHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("PLUGX_HOME", home)
	t.Setenv("PLUGX_PLUGINS", "")
	t.Setenv("PLUGX_LOG_LEVEL", "error")
	if _, err := run(t, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	return home
}

func TestInitSeedsBuiltins(t *testing.T) {
	home := newHome(t)

	for _, p := range []string{
		filepath.Join(home, "registry.yaml"),
		filepath.Join(home, "config.yaml"),
		filepath.Join(home, "plugins", "mock", "plugin.yaml"),
		filepath.Join(home, "plugins", "social", "plugin.yaml"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected %s: %v", p, err)
		}
	}

	out, err := run(t, "init")
	if err != nil {
		t.Fatalf("second init: %v", err)
	}
	if strings.Contains(out, "Installed built-in") {
		t.Errorf("second init reinstalled samples:\n%s", out)
	}
}

func TestListShowsGateResults(t *testing.T) {
	newHome(t)

	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "mock") || !strings.Contains(out, "available") {
		t.Errorf("mock should be available:\n%s", out)
	}
	if !strings.Contains(out, `permission "network_access"`) {
		t.Errorf("social should be rejected by the permission gate:\n%s", out)
	}

	out, err = run(t, "list", "--json")
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	if !strings.Contains(out, `"name": "mock"`) || !strings.Contains(out, `"loaded": false`) {
		t.Errorf("unexpected JSON:\n%s", out)
	}
}

func TestEnableConfigureRenderDisable(t *testing.T) {
	home := newHome(t)

	out, err := run(t, "enable", "mock")
	if err != nil {
		t.Fatalf("enable: %v", err)
	}
	if !strings.Contains(out, "Enabled mock") {
		t.Errorf("enable output = %q", out)
	}
	record, err := os.ReadFile(filepath.Join(home, "registry.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(record), "- mock") {
		t.Errorf("record does not list mock:\n%s", record)
	}

	out, err = run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "active") {
		t.Errorf("mock should be active:\n%s", out)
	}

	if _, err := run(t, "configure", "mock", "greeting", "Hi"); err != nil {
		t.Fatalf("configure greeting: %v", err)
	}
	if _, err := run(t, "configure", "mock", "step", "5"); err != nil {
		t.Fatalf("configure step: %v", err)
	}
	descriptor, err := os.ReadFile(filepath.Join(home, "plugins", "mock", "plugin.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(descriptor), "step: 5") {
		t.Errorf("configure not persisted:\n%s", descriptor)
	}

	out, err = run(t, "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Hi, world!") {
		t.Errorf("render should use the configured greeting:\n%s", out)
	}

	out, err = run(t, "render", "mock", "--json")
	if err != nil {
		t.Fatalf("render --json: %v", err)
	}
	if !strings.Contains(out, `"kind": "toggle"`) {
		t.Errorf("render JSON missing toggle:\n%s", out)
	}

	out, err = run(t, "disable", "mock")
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if !strings.Contains(out, "Disabled mock") {
		t.Errorf("disable output = %q", out)
	}
	record, err = os.ReadFile(filepath.Join(home, "registry.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(record), "- mock") {
		t.Errorf("record still lists mock:\n%s", record)
	}

	if _, err := run(t, "render", "mock"); err == nil {
		t.Error("render of a disabled extension should fail")
	}
}

func TestEnableRejected(t *testing.T) {
	newHome(t)

	_, err := run(t, "enable", "social")
	if err == nil {
		t.Fatal("enable social should fail without network access")
	}
	if !strings.Contains(err.Error(), "permission") {
		t.Errorf("error = %v, want a permission reason", err)
	}

	if _, err := run(t, "enable", "missing"); err == nil {
		t.Error("enable of an unknown extension should fail")
	}
}

func TestDisableUnloadableRemovesRecordEntry(t *testing.T) {
	home := newHome(t)

	if _, err := run(t, "enable", "mock"); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if err := os.RemoveAll(filepath.Join(home, "plugins", "mock")); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "disable", "mock")
	if err != nil {
		t.Fatalf("disable: %v", err)
	}
	if !strings.Contains(out, "Removed mock") {
		t.Errorf("disable output = %q", out)
	}

	if _, err := run(t, "disable", "mock"); err == nil {
		t.Error("second disable should fail")
	}
}

func TestInfo(t *testing.T) {
	newHome(t)

	out, err := run(t, "info", "social")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"Version:      1.2.0", "1.0.0 - 2.5.0", "network_access (denied)", "post_text"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "info", "mock", "--json")
	if err != nil {
		t.Fatalf("info --json: %v", err)
	}
	if !strings.Contains(out, `"compatible": true`) {
		t.Errorf("unexpected JSON:\n%s", out)
	}
}

func TestValidate(t *testing.T) {
	home := newHome(t)

	out, err := run(t, "validate", filepath.Join(home, "plugins", "mock"))
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Valid manifest: mock (v1.0.0)") {
		t.Errorf("validate output:\n%s", out)
	}

	bad := filepath.Join(t.TempDir(), "plugin.yaml")
	if err := os.WriteFile(bad, []byte("name: broken\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "validate", bad)
	if !errors.Is(err, errInvalidManifest) {
		t.Fatalf("validate bad = %v, want errInvalidManifest", err)
	}
	if !strings.Contains(out, "[FAIL]") {
		t.Errorf("validate bad output:\n%s", out)
	}
}

func TestCreate(t *testing.T) {
	home := newHome(t)

	out, err := run(t, "create", "weather-feed", "--permission", "network_access")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if strings.Contains(out, "Warnings:") {
		t.Errorf("generated descriptor has warnings:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(home, "plugins", "weather-feed", "plugin.yaml")); err != nil {
		t.Fatalf("descriptor not created: %v", err)
	}

	if _, err := run(t, "create", "weather-feed"); err == nil {
		t.Error("create into a non-empty directory should fail")
	}
	if _, err := run(t, "create", "x", "--permission", "teleport"); err == nil {
		t.Error("unknown permission should fail")
	}

	out, err = run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "weather-feed") || !strings.Contains(out, "no implementation registered") {
		t.Errorf("scaffolded extension should have no implementation:\n%s", out)
	}
}

func TestConfigSetGet(t *testing.T) {
	newHome(t)

	if _, err := run(t, "config", "set", "state.backend", "bolt"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := run(t, "config", "get", "state.backend")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "bolt" {
		t.Errorf("config get = %q, want bolt", out)
	}
	if _, err := run(t, "config", "set", "state.backend", "redis"); err == nil {
		t.Error("unsupported backend should fail")
	}
	if _, err := run(t, "config", "set", "nope", "1"); err == nil {
		t.Error("unknown key should fail")
	}

	// The bolt backend keeps state across runs.
	if _, err := run(t, "enable", "mock"); err != nil {
		t.Fatalf("enable with bolt: %v", err)
	}
	out, err = run(t, "list")
	if err != nil {
		t.Fatalf("list with bolt: %v", err)
	}
	if !strings.Contains(out, "active") {
		t.Errorf("mock should be active with bolt:\n%s", out)
	}
}

func TestDoctor(t *testing.T) {
	newHome(t)

	out, err := run(t, "doctor")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[ OK ] mock (v1.0.0)") {
		t.Errorf("doctor output:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] social") {
		t.Errorf("doctor should warn about social:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc", "today"

	out, err := run(t, "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("version --short = %q", out)
	}

	out, err = run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "plugx version 1.2.3") {
		t.Errorf("version = %q", out)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw     string
		want    interface{}
		wantErr bool
	}{
		{"10", 10, false},
		{"true", true, false},
		{"hello", "hello", false},
		{`"10"`, "10", false},
		{"", "", false},
		{"[1, 2]", nil, true},
		{"a: b", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseValue(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseValue(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseValue(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}
