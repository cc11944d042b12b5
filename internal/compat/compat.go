// Package compat decides whether an extension's declared host-version
// bounds admit the running host version.
package compat

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Check reports whether hostVersion lies within [minVersion, maxVersion].
// Both bounds are inclusive; an empty bound is absent. Any version that
// fails to parse makes the result incompatible, and the reason names the
// input that was malformed.
func Check(minVersion, maxVersion, hostVersion string) (bool, string) {
	host, err := parse(hostVersion)
	if err != nil {
		return false, fmt.Sprintf("invalid host version %q: %v", hostVersion, err)
	}

	if minVersion != "" {
		lo, err := parse(minVersion)
		if err != nil {
			return false, fmt.Sprintf("invalid min_host_version %q: %v", minVersion, err)
		}
		if host.LessThan(lo) {
			return false, fmt.Sprintf("requires host version >= %s, running %s", minVersion, hostVersion)
		}
	}

	if maxVersion != "" {
		hi, err := parse(maxVersion)
		if err != nil {
			return false, fmt.Sprintf("invalid max_host_version %q: %v", maxVersion, err)
		}
		if host.GreaterThan(hi) {
			return false, fmt.Sprintf("requires host version <= %s, running %s", maxVersion, hostVersion)
		}
	}

	return true, "compatible"
}

// Compare compares two version strings. Returns -1, 0 or 1.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parse(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// parse strips a leading "v" and parses the version strictly, so "1.0" or
// "latest" do not silently pass the gate.
func parse(version string) (*semver.Version, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return nil, fmt.Errorf("empty version")
	}
	return semver.StrictNewVersion(strings.TrimPrefix(version, "v"))
}
