package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/plugx/internal/manifest"
)

func TestNewScaffoldData(t *testing.T) {
	tests := []struct {
		name    string
		wantPkg string
		wantTyp string
	}{
		{"weather-feed", "weatherfeed", "WeatherFeed"},
		{"mock", "mock", "Mock"},
		{"social_poster2", "socialposter2", "SocialPoster2"},
		{"--", "ext", "Ext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewScaffoldData(tt.name, "1.0.0", nil)
			if d.PackageName != tt.wantPkg {
				t.Errorf("PackageName = %q, want %q", d.PackageName, tt.wantPkg)
			}
			if d.TypeName != tt.wantTyp {
				t.Errorf("TypeName = %q, want %q", d.TypeName, tt.wantTyp)
			}
			if d.Version != "0.1.0" || d.MinHostVersion != "1.0.0" {
				t.Errorf("versions = %q, %q", d.Version, d.MinHostVersion)
			}
			if d.Year == 0 {
				t.Error("Year should not be zero")
			}
		})
	}
}

func TestValidatePermissions(t *testing.T) {
	if err := ValidatePermissions([]string{"network_access", "file_access"}); err != nil {
		t.Errorf("ValidatePermissions() error: %v", err)
	}
	if err := ValidatePermissions([]string{"root"}); err == nil {
		t.Error("ValidatePermissions(root) error = nil")
	}
}

func TestGenerate(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "weather-feed")

	data := NewScaffoldData("weather-feed", "1.2.0", []string{"network_access"})
	result, err := Generate(data, outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertFiles(t, result, []string{"README.md", "extension.go", "plugin.yaml"})

	manifestContent := readGenerated(t, outDir, "plugin.yaml")
	assertContains(t, manifestContent, "name: weather-feed")
	assertContains(t, manifestContent, "min_host_version: 1.2.0")
	assertContains(t, manifestContent, "- network_access")

	goContent := readGenerated(t, outDir, "extension.go")
	assertContains(t, goContent, "package weatherfeed")
	assertContains(t, goContent, "type WeatherFeed struct")
	assertContains(t, goContent, `"github.com/agentx-labs/plugx/internal/extension"`)
	assertContains(t, goContent, "UnloadFlush()")

	readme := readGenerated(t, outDir, "README.md")
	assertContains(t, readme, "plugx enable weather-feed")

	assertManifestValid(t, outDir, "plugin.yaml")

	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestGenerateWithoutPermissions(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "quiet")

	result, err := Generate(NewScaffoldData("quiet", "1.0.0", nil), outDir)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	manifestContent := readGenerated(t, outDir, "plugin.yaml")
	assertNotContains(t, manifestContent, "security:")
	assertManifestValid(t, outDir, "plugin.yaml")

	m, err := manifest.LoadFile(filepath.Join(outDir, "plugin.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if m.Config["enabled"] != true {
		t.Errorf("config.enabled = %v, want true", m.Config["enabled"])
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

func TestGenerateNonEmptyDir(t *testing.T) {
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Generate(NewScaffoldData("test", "1.0.0", nil), outDir)
	if err == nil {
		t.Fatal("expected error for non-empty output dir")
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("error should mention 'not empty', got: %v", err)
	}
}

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Fatalf("files = %v, want %v", result.Files, expected)
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("expected content to contain %q", substr)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("expected content NOT to contain %q", substr)
	}
}

func assertManifestValid(t *testing.T, dir, filename string) {
	t.Helper()
	result, err := manifest.ValidateFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("validating %s: %v", filename, err)
	}
	if !result.Valid {
		for _, issue := range result.Issues {
			t.Errorf("manifest issue: %s", issue)
		}
	}
}
