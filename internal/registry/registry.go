package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/agentx-labs/plugx/internal/extension"
	"github.com/agentx-labs/plugx/internal/factory"
	"github.com/agentx-labs/plugx/internal/installer"
	"github.com/agentx-labs/plugx/internal/logging"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/sirupsen/logrus"
)

// ErrNotLoaded is returned by lifecycle operations on a name without a live
// instance.
var ErrNotLoaded = errors.New("extension not loaded")

// Options configures a Registry.
type Options struct {
	// RecordPath is the global configuration record. Required.
	RecordPath string

	Manifests *manifest.Store
	Catalog   *factory.Catalog
	Installer installer.Installer
	State     state.Backend

	// HostVersion is used when the record does not set host_version.
	HostVersion string

	Logger logrus.FieldLogger
}

// Registry holds the live instances, keyed by name, in load order.
type Registry struct {
	recordPath  string
	record      *Record
	hostVersion string
	factory     *factory.Factory
	live        map[string]extension.Extension
	order       []string
	log         logrus.FieldLogger
}

// New loads the record at opts.RecordPath and returns an empty registry.
// Call LoadAll to instantiate the enabled extensions.
func New(opts Options) (*Registry, error) {
	rec, err := LoadRecord(opts.RecordPath)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		recordPath:  opts.RecordPath,
		record:      rec,
		hostVersion: opts.HostVersion,
		live:        make(map[string]extension.Extension),
		log:         logging.OrDiscard(opts.Logger),
	}
	r.factory = factory.New(factory.Options{
		Manifests:   opts.Manifests,
		Catalog:     opts.Catalog,
		Installer:   opts.Installer,
		State:       opts.State,
		HostVersion: r.HostVersion,
		Security:    r.Security,
		Logger:      opts.Logger,
	})
	return r, nil
}

// HostVersion is the version the compatibility gate compares against.
func (r *Registry) HostVersion() string {
	if r.record.HostVersion != "" {
		return r.record.HostVersion
	}
	return r.hostVersion
}

// Security returns the host security flags from the record.
func (r *Registry) Security() security.Flags { return r.record.Security }

// Record returns the live record. Callers that modify it must call
// SaveRecord.
func (r *Registry) Record() *Record { return r.record }

// SaveRecord persists the record.
func (r *Registry) SaveRecord() error {
	return SaveRecord(r.recordPath, r.record)
}

// Factory returns the factory used for loading.
func (r *Registry) Factory() *factory.Factory { return r.factory }

// LoadAll unloads every live instance, then loads each name in the record's
// enabled list in order. It returns the number of live instances.
func (r *Registry) LoadAll(ctx context.Context) int {
	r.unloadAll()

	for _, name := range r.record.EnabledPlugins {
		if _, ok := r.live[name]; ok {
			continue
		}
		if err := r.load(ctx, name); err != nil {
			r.log.WithField("plugin", name).WithError(err).Warn("skipping extension")
		}
	}

	r.log.WithFields(logrus.Fields{
		"loaded":  len(r.order),
		"enabled": len(r.record.EnabledPlugins),
	}).Info("extensions loaded")
	return len(r.order)
}

// Load instantiates a single name through the same path as LoadAll,
// replacing any live instance. The record is not modified.
func (r *Registry) Load(ctx context.Context, name string) error {
	if _, ok := r.live[name]; ok {
		if err := r.Unload(name); err != nil {
			r.log.WithField("plugin", name).WithError(err).Warn("unload before reload failed")
		}
	}
	return r.load(ctx, name)
}

func (r *Registry) load(ctx context.Context, name string) error {
	ext, err := r.factory.Build(ctx, name)
	if err != nil {
		return err
	}
	log := r.log.WithField("plugin", name)

	m := ext.Manifest()
	if m == nil {
		err := &factory.GateError{Plugin: name, Gate: factory.GateConstruct, Reason: "instance has no manifest"}
		log.WithError(err).Warn("extension rejected after construction")
		r.teardown(ext, log)
		return err
	}
	if err := r.factory.Gate(name, m); err != nil {
		log.WithError(err).Warn("extension rejected after construction")
		r.teardown(ext, log)
		return err
	}

	overrides := r.record.Overrides(name)
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := ext.SetConfig(k, overrides[k]); err != nil {
			log.WithError(err).WithField("key", k).Warn("applying config override failed")
		}
	}

	r.live[name] = ext
	r.order = append(r.order, name)
	return nil
}

// Enable adds name to the persisted enabled list, sets its flag and runs
// OnEnable. Enabling a name already in the list changes nothing.
func (r *Registry) Enable(name string) error {
	ext, ok := r.live[name]
	if !ok {
		return fmt.Errorf("enabling %s: %w", name, ErrNotLoaded)
	}
	if !r.record.AddEnabled(name) {
		return nil
	}
	r.persist(name)
	ext.SetEnabled(true)
	if err := ext.OnEnable(); err != nil {
		return fmt.Errorf("enabling %s: %w", name, err)
	}
	r.log.WithField("plugin", name).Info("extension enabled")
	return nil
}

// Disable removes name from the persisted enabled list, clears its flag and
// runs OnDisable. The instance stays live. Disabling a name that is not in
// the list changes nothing.
func (r *Registry) Disable(name string) error {
	ext, ok := r.live[name]
	if !ok {
		return fmt.Errorf("disabling %s: %w", name, ErrNotLoaded)
	}
	if !r.record.RemoveEnabled(name) {
		return nil
	}
	r.persist(name)
	ext.SetEnabled(false)
	if err := ext.OnDisable(); err != nil {
		return fmt.Errorf("disabling %s: %w", name, err)
	}
	r.log.WithField("plugin", name).Info("extension disabled")
	return nil
}

// Configure sets a configuration value on a live extension. A record
// override for the same key is updated too so the next load keeps it.
func (r *Registry) Configure(name, key string, value interface{}) error {
	ext, ok := r.live[name]
	if !ok {
		return fmt.Errorf("configuring %s: %w", name, ErrNotLoaded)
	}
	if _, ok := r.record.Overrides(name)[key]; ok {
		r.record.SetOverride(name, key, value)
		r.persist(name)
	}
	return ext.SetConfig(key, value)
}

// Unload runs OnUnload, flushes state when the extension asks for it and
// drops the instance. The record is not modified.
func (r *Registry) Unload(name string) error {
	ext, ok := r.live[name]
	if !ok {
		return fmt.Errorf("unloading %s: %w", name, ErrNotLoaded)
	}
	log := r.log.WithField("plugin", name)
	hookErr := r.teardown(ext, log)

	delete(r.live, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	log.Info("extension unloaded")

	if hookErr != nil {
		return fmt.Errorf("unloading %s: %w", name, hookErr)
	}
	return nil
}

// teardown runs OnUnload and flushes state when the extension asks for it.
// It returns the hook error; flush errors are only logged.
func (r *Registry) teardown(ext extension.Extension, log logrus.FieldLogger) error {
	hookErr := ext.OnUnload()
	if hookErr != nil {
		log.WithError(hookErr).Warn("unload hook failed")
	}
	if ext.UnloadFlush() == extension.FlushOnUnload {
		if err := ext.FlushState(); err != nil {
			log.WithError(err).Warn("state flush on unload failed")
		}
	}
	return hookErr
}

// Get returns the live instance for name.
func (r *Registry) Get(name string) (extension.Extension, bool) {
	ext, ok := r.live[name]
	return ext, ok
}

// Names returns the live names in load order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of live instances.
func (r *Registry) Len() int { return len(r.order) }

// Render hands every enabled instance to s in load order. An instance whose
// RenderInterface fails is unloaded; the others are unaffected.
func (r *Registry) Render(s extension.Surface) []error {
	var errs []error
	for _, name := range r.Names() {
		ext := r.live[name]
		if !ext.IsEnabled() {
			continue
		}
		if err := ext.RenderInterface(s); err != nil {
			r.log.WithField("plugin", name).WithError(err).Error("render failed, unloading")
			errs = append(errs, fmt.Errorf("rendering %s: %w", name, err))
			if err := r.Unload(name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errs
}

// Close unloads every live instance in reverse load order.
func (r *Registry) Close() error {
	return r.unloadAll()
}

func (r *Registry) unloadAll() error {
	var errs []error
	for i := len(r.order) - 1; i >= 0; i-- {
		if err := r.Unload(r.order[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) persist(name string) {
	if err := r.SaveRecord(); err != nil {
		r.log.WithField("plugin", name).WithError(err).Error("saving registry record failed")
	}
}

var defaultRegistry atomic.Pointer[Registry]

// SetDefault installs r as the process-wide registry.
func SetDefault(r *Registry) { defaultRegistry.Store(r) }

// Default returns the process-wide registry, or nil before SetDefault.
func Default() *Registry { return defaultRegistry.Load() }
