package manifest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no descriptor exists at the expected location.
	ErrNotFound = errors.New("manifest not found")

	// ErrInvalid is returned when a descriptor cannot be parsed or fails
	// schema validation (for example a missing name or version).
	ErrInvalid = errors.New("invalid manifest")
)

// InvalidError carries the schema issues that made a descriptor invalid.
// It matches ErrInvalid with errors.Is.
type InvalidError struct {
	Source string
	Issues []ValidationIssue
	Err    error // parse error, when the file was not valid YAML
}

func (e *InvalidError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", ErrInvalid, e.Source)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for i, issue := range e.Issues {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(issue.String())
	}
	return b.String()
}

// Is reports ErrInvalid as the sentinel for every InvalidError.
func (e *InvalidError) Is(target error) bool {
	return target == ErrInvalid
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}
