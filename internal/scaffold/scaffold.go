package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/agentx-labs/plugx/internal/branding"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed scaffolds
var scaffoldFS embed.FS

const templatesDir = "scaffolds/extension"

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name           string   // e.g., "weather-feed"
	Description    string   // Human-readable description
	Version        string   // Semver, e.g., "0.1.0"
	MinHostVersion string   // Lowest host version the extension supports
	Author         string   // Optional
	Permissions    []string // Required permission tags
	PackageName    string   // Derived: weatherfeed
	TypeName       string   // Derived: WeatherFeed
	Module         string   // Host Go module path
	CLIName        string   // Host CLI name
	Year           int      // Current year
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated.
func NewScaffoldData(name, hostVersion string, permissions []string) *ScaffoldData {
	d := &ScaffoldData{
		Name:           name,
		Version:        "0.1.0",
		MinHostVersion: hostVersion,
		Permissions:    permissions,
		Module:         branding.GoModule(),
		CLIName:        branding.CLIName(),
		Year:           time.Now().Year(),
	}
	d.Description = fmt.Sprintf("%s extension: %s", branding.DisplayName(), name)
	d.PackageName, d.TypeName = identifiers(name)
	return d
}

// ValidatePermissions rejects tags the host does not know.
func ValidatePermissions(perms []string) error {
	for _, p := range perms {
		if _, known := (security.Flags{}).Grants(p); !known {
			return fmt.Errorf("unknown permission %q (known: %s, %s, %s)", p,
				security.PermNetworkAccess, security.PermFileAccess, security.PermSystemAccess)
		}
	}
	return nil
}

// Generate renders every template into outputDir, which must be empty or
// absent, and validates the generated descriptor.
func Generate(data *ScaffoldData, outputDir string) (*Result, error) {
	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		tmplPath := path.Join(templatesDir, entry.Name())
		tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", tmplPath, err)
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)

		tmpl, err := template.New(entry.Name()).Parse(string(tmplBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("executing template %s: %w", entry.Name(), err)
		}

		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
	}

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(outputDir, branding.ManifestFile())
	valResult, valErr := manifest.ValidateFile(manifestFile)
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate manifest: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			result.Warnings = append(result.Warnings, issue.String())
		}
	}

	return result, nil
}

// identifiers derives a Go package name and an exported type name from an
// extension name such as "weather-feed".
func identifiers(name string) (pkg, typ string) {
	title := cases.Title(language.English)
	var pb, tb strings.Builder
	for _, part := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		lower := strings.ToLower(part)
		pb.WriteString(lower)
		tb.WriteString(title.String(lower))
	}
	pkg, typ = pb.String(), tb.String()
	if pkg == "" || unicode.IsDigit(rune(pkg[0])) {
		pkg = "ext" + pkg
		typ = "Ext" + typ
	}
	return pkg, typ
}
