package extension

import (
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/sirupsen/logrus"
)

// Surface is the host-supplied rendering target. The widget set is the
// host's concern; extensions only describe controls.
type Surface interface {
	Heading(text string)
	Text(label, value string)
	Toggle(key, label string, on bool)
	Input(key, label, value string)
	Button(key, label string)
}

// FlushPolicy declares what happens to persisted state when an extension
// is unloaded.
type FlushPolicy int

const (
	// FlushOnUnload writes the state map during unload. The registry
	// flushes again after OnUnload so an override cannot lose it.
	FlushOnUnload FlushPolicy = iota

	// KeepOnUnload declines the flush; only values already written by
	// SetState survive.
	KeepOnUnload
)

func (p FlushPolicy) String() string {
	switch p {
	case FlushOnUnload:
		return "flush"
	case KeepOnUnload:
		return "keep"
	default:
		return "unknown"
	}
}

// Extension is the fixed capability set every extension exposes.
type Extension interface {
	Name() string
	Version() string
	Description() string
	Author() string
	License() string
	MinHostVersion() string
	MaxHostVersion() string
	Manifest() *manifest.Manifest
	InstanceID() string

	// IsEnabled combines the stored flag with a fresh permission check.
	IsEnabled() bool
	SetEnabled(enabled bool)

	// RenderInterface populates the host surface. An error is fatal to
	// this extension's activation only.
	RenderInterface(s Surface) error

	OnInit() error
	OnEnable() error
	OnDisable() error
	OnUnload() error

	GetConfig(key string, def interface{}) interface{}
	SetConfig(key string, value interface{}) error
	Config() map[string]interface{}

	GetState(key string, def interface{}) interface{}
	SetState(key string, value interface{}) error
	FlushState() error

	// SanitizeInput applies security.Sanitize when the field is listed in
	// the manifest or the host sanitizes all inputs.
	SanitizeInput(field, value string) string

	// UnloadFlush must be implemented by every concrete extension.
	UnloadFlush() FlushPolicy
}

// Env carries the collaborators injected into every constructor.
type Env struct {
	// Key is the name the extension was loaded under: its directory in the
	// plugins root and its state key. Defaults to the manifest name.
	Key string

	// Manifests persists SetConfig. Nil keeps configuration in memory.
	Manifests *manifest.Store

	// State backs GetState/SetState. Nil keeps state in memory.
	State state.Backend

	// Security returns the current host flags. Nil means nothing is granted.
	Security func() security.Flags

	Logger logrus.FieldLogger
}

// Constructor builds an extension from its injected manifest.
type Constructor func(m *manifest.Manifest, env Env) (Extension, error)
