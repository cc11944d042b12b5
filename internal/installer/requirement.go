package installer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is one parsed dependency specifier such as "requests>=2.31,<3".
type Requirement struct {
	// Name is the normalized package name.
	Name string

	// Constraint is nil when the specifier carries no version bound.
	Constraint *semver.Constraints

	// Raw is the specifier as written in the manifest.
	Raw string
}

func (r Requirement) String() string { return r.Raw }

// ParseRequirement splits a specifier into a package name and a version
// constraint. Extras ("pkg[extra]") and environment markers ("; ...") are
// dropped. "==" and "~=" are mapped to their semver equivalents.
func ParseRequirement(spec string) (Requirement, error) {
	raw := strings.TrimSpace(spec)
	if raw == "" {
		return Requirement{}, fmt.Errorf("empty requirement")
	}

	body := raw
	if i := strings.IndexByte(body, ';'); i >= 0 {
		body = strings.TrimSpace(body[:i])
	}

	end := 0
	for end < len(body) && isNameChar(body[end]) {
		end++
	}
	if end == 0 {
		return Requirement{}, fmt.Errorf("requirement %q: missing package name", raw)
	}
	name := body[:end]
	rest := strings.TrimSpace(body[end:])

	if strings.HasPrefix(rest, "[") {
		j := strings.IndexByte(rest, ']')
		if j < 0 {
			return Requirement{}, fmt.Errorf("requirement %q: unterminated extras", raw)
		}
		rest = strings.TrimSpace(rest[j+1:])
	}

	req := Requirement{Name: NormalizeName(name), Raw: raw}
	if rest == "" {
		return req, nil
	}

	c, err := semver.NewConstraint(translateOperators(rest))
	if err != nil {
		return Requirement{}, fmt.Errorf("requirement %q: %w", raw, err)
	}
	req.Constraint = c
	return req, nil
}

// Satisfied reports whether version meets the constraint. A version that does
// not parse never satisfies a constrained requirement.
func (r Requirement) Satisfied(version string) bool {
	if r.Constraint == nil {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return r.Constraint.Check(v)
}

// Plan returns the requirements that are not installed or whose installed
// version conflicts with the constraint, in input order. installed maps
// normalized names to versions.
func Plan(reqs []Requirement, installed map[string]string) []Requirement {
	var batch []Requirement
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if seen[r.Raw] {
			continue
		}
		seen[r.Raw] = true

		v, ok := installed[r.Name]
		if ok && r.Satisfied(v) {
			continue
		}
		batch = append(batch, r)
	}
	return batch
}

// NormalizeName lowercases a package name and folds runs of "-", "_" and
// "." into a single "-".
func NormalizeName(name string) string {
	var b strings.Builder
	sep := false
	for _, c := range strings.ToLower(name) {
		if c == '-' || c == '_' || c == '.' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('-')
		}
		sep = false
		b.WriteRune(c)
	}
	return b.String()
}

// ParseInventory reads package-manager list output. Lines of the form
// "name==version" and "name version" are recognized; comments, editable
// installs and table headers are skipped.
func ParseInventory(out string) map[string]string {
	installed := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		var name, version string
		if parts := strings.SplitN(line, "==", 2); len(parts) == 2 {
			name, version = parts[0], parts[1]
		} else if fields := strings.Fields(line); len(fields) >= 2 {
			name, version = fields[0], fields[1]
		} else {
			continue
		}

		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" || version == "" || strings.EqualFold(name, "package") {
			continue
		}
		installed[NormalizeName(name)] = version
	}
	return installed
}

// names returns the sorted names in a batch, for logging.
func names(reqs []Requirement) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Name)
	}
	sort.Strings(out)
	return out
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '.'
}

func translateOperators(s string) string {
	s = strings.ReplaceAll(s, "~=", "~")
	s = strings.ReplaceAll(s, "===", "=")
	s = strings.ReplaceAll(s, "==", "=")
	return s
}
