package factory

import (
	"errors"
	"fmt"
)

var (
	// ErrNoImplementation means the catalog has no constructor for a name.
	ErrNoImplementation = errors.New("no implementation registered")

	// ErrAmbiguousImplementation means more than one constructor claims a
	// name.
	ErrAmbiguousImplementation = errors.New("more than one implementation registered")

	// ErrIdentityMismatch means the constructed instance reports a name
	// other than the manifest's.
	ErrIdentityMismatch = errors.New("instance name does not match manifest")
)

// Gate names used in GateError and in the "gate" log field.
const (
	GateManifest      = "manifest"
	GateResolve       = "resolve"
	GateCompatibility = "compatibility"
	GatePermission    = "permission"
	GateInstall       = "install"
	GateConstruct     = "construct"
	GateIdentity      = "identity"
	GateInit          = "init"
)

// GateError is returned when a manifest is rejected by the compatibility or
// permission gate.
type GateError struct {
	Plugin string
	Gate   string
	Reason string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("extension %s rejected by %s gate: %s", e.Plugin, e.Gate, e.Reason)
}
