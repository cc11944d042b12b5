package extension

import (
	"fmt"

	"github.com/agentx-labs/plugx/internal/logging"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ConfigEnabledKey is the manifest config key holding the default value of
// the enabled flag. Absent means enabled.
const ConfigEnabledKey = "enabled"

// Base implements everything in Extension except RenderInterface and
// UnloadFlush.
type Base struct {
	manifest *manifest.Manifest
	env      Env
	config   map[string]interface{}
	state    *state.Store
	enabled  bool
	id       string
	log      logrus.FieldLogger
}

// NewBase derives identity, configuration defaults and persisted state from
// m. The manifest is retained and rewritten by SetConfig.
func NewBase(m *manifest.Manifest, env Env) *Base {
	if env.Key == "" {
		env.Key = m.Name
	}
	if m.Config == nil {
		m.Config = map[string]interface{}{}
	}

	id := uuid.NewString()
	log := logging.OrDiscard(env.Logger).WithFields(logrus.Fields{
		"plugin":   env.Key,
		"instance": id,
	})

	b := &Base{
		manifest: m,
		env:      env,
		config:   make(map[string]interface{}, len(m.Config)),
		enabled:  true,
		id:       id,
		log:      log,
	}
	for k, v := range m.Config {
		b.config[k] = v
	}
	if v, ok := m.Config[ConfigEnabledKey].(bool); ok {
		b.enabled = v
	}
	b.state = state.Open(env.Key, env.State, log)
	return b
}

func (b *Base) Name() string                 { return b.manifest.Name }
func (b *Base) Version() string              { return b.manifest.Version }
func (b *Base) Description() string          { return b.manifest.Description }
func (b *Base) Author() string               { return b.manifest.Author }
func (b *Base) License() string              { return b.manifest.License }
func (b *Base) MinHostVersion() string       { return b.manifest.MinHostVersion }
func (b *Base) MaxHostVersion() string       { return b.manifest.MaxHostVersion }
func (b *Base) Manifest() *manifest.Manifest { return b.manifest }
func (b *Base) InstanceID() string           { return b.id }

// Key returns the name the extension was loaded under.
func (b *Base) Key() string { return b.env.Key }

// Logger returns a logger carrying the plugin and instance fields.
func (b *Base) Logger() logrus.FieldLogger { return b.log }

// SecurityFlags returns the host flags as of now.
func (b *Base) SecurityFlags() security.Flags {
	if b.env.Security == nil {
		return security.Flags{}
	}
	return b.env.Security()
}

// IsEnabled is false when the flag is off or when a required permission is
// no longer granted.
func (b *Base) IsEnabled() bool {
	if !b.enabled {
		return false
	}
	ok, _ := security.Check(b.manifest.Security.RequiredPermissions, b.SecurityFlags())
	return ok
}

func (b *Base) SetEnabled(enabled bool) { b.enabled = enabled }

func (b *Base) OnInit() error    { return nil }
func (b *Base) OnEnable() error  { return nil }
func (b *Base) OnDisable() error { return nil }

// OnUnload flushes state. Overrides must call it or return KeepOnUnload
// from UnloadFlush.
func (b *Base) OnUnload() error { return b.FlushState() }

func (b *Base) GetConfig(key string, def interface{}) interface{} {
	if v, ok := b.config[key]; ok {
		return v
	}
	return def
}

// SetConfig updates the value in memory and in the manifest's config
// section, then rewrites the manifest. On a write failure the in-memory
// value stays and the error is returned.
func (b *Base) SetConfig(key string, value interface{}) error {
	b.config[key] = value
	b.manifest.Config[key] = value
	if b.env.Manifests == nil {
		return nil
	}
	if err := b.env.Manifests.Save(b.env.Key, b.manifest); err != nil {
		b.log.WithError(err).WithField("key", key).Error("persisting config failed")
		return fmt.Errorf("persisting config %q: %w", key, err)
	}
	return nil
}

// Config returns a copy of the effective configuration.
func (b *Base) Config() map[string]interface{} {
	out := make(map[string]interface{}, len(b.config))
	for k, v := range b.config {
		out[k] = v
	}
	return out
}

func (b *Base) GetState(key string, def interface{}) interface{} {
	return b.state.Get(key, def)
}

// SetState stores the value and flushes the whole state map.
func (b *Base) SetState(key string, value interface{}) error {
	return b.state.Set(key, value)
}

func (b *Base) FlushState() error { return b.state.Flush() }

// StateSnapshot returns a copy of the state map.
func (b *Base) StateSnapshot() map[string]interface{} { return b.state.Snapshot() }

func (b *Base) SanitizeInput(field, value string) string {
	if b.SecurityFlags().SanitizeAllInputs || b.manifest.SanitizesField(field) {
		return security.Sanitize(value)
	}
	return value
}
