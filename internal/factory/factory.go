package factory

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentx-labs/plugx/internal/compat"
	"github.com/agentx-labs/plugx/internal/extension"
	"github.com/agentx-labs/plugx/internal/installer"
	"github.com/agentx-labs/plugx/internal/logging"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/security"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/sirupsen/logrus"
)

// Options configures a Factory. Manifests and Catalog are required.
type Options struct {
	Manifests *manifest.Store
	Catalog   *Catalog

	// Installer defaults to installer.Noop.
	Installer installer.Installer

	// State is handed to every constructed extension.
	State state.Backend

	// HostVersion and Security are read on every build so changes to the
	// global record take effect without a new factory.
	HostVersion func() string
	Security    func() security.Flags

	Logger logrus.FieldLogger
}

// Factory builds extensions. It holds no per-extension state.
type Factory struct {
	opts Options
	log  logrus.FieldLogger
}

// New returns a Factory for opts.
func New(opts Options) *Factory {
	if opts.Installer == nil {
		opts.Installer = installer.Noop{}
	}
	if opts.HostVersion == nil {
		opts.HostVersion = func() string { return "" }
	}
	if opts.Security == nil {
		opts.Security = func() security.Flags { return security.Flags{} }
	}
	return &Factory{opts: opts, log: logging.OrDiscard(opts.Logger)}
}

// Create is Build without the error: it returns nil on any failure. The
// failure has already been logged.
func (f *Factory) Create(ctx context.Context, name string) extension.Extension {
	ext, err := f.Build(ctx, name)
	if err != nil {
		return nil
	}
	return ext
}

// Build runs the full pipeline for name and returns the initialized
// extension.
func (f *Factory) Build(ctx context.Context, name string) (extension.Extension, error) {
	log := f.log.WithField("plugin", name)

	m, err := f.opts.Manifests.Load(name)
	if err != nil {
		return nil, reject(log, GateManifest, err)
	}

	ctor, err := f.opts.Catalog.Resolve(name)
	if err != nil {
		return nil, reject(log, GateResolve, err)
	}

	if err := f.Gate(name, m); err != nil {
		var ge *GateError
		gate := GateCompatibility
		if errors.As(err, &ge) {
			gate = ge.Gate
		}
		return nil, reject(log, gate, err)
	}

	if len(m.Dependencies) > 0 {
		if err := f.opts.Installer.Install(ctx, m.Dependencies); err != nil {
			log.WithFields(logrus.Fields{
				"gate":   GateInstall,
				"reason": err.Error(),
			}).Warn("dependency installation failed, continuing")
		}
	}

	manifestName := m.Name
	ext, err := ctor(m, extension.Env{
		Key:       name,
		Manifests: f.opts.Manifests,
		State:     f.opts.State,
		Security:  f.opts.Security,
		Logger:    f.opts.Logger,
	})
	if err != nil {
		return nil, reject(log, GateConstruct, err)
	}
	if ext == nil {
		return nil, reject(log, GateConstruct, errors.New("constructor returned no instance"))
	}

	if got := ext.Name(); got != manifestName {
		return nil, reject(log, GateIdentity,
			fmt.Errorf("%w: manifest %q, instance %q", ErrIdentityMismatch, manifestName, got))
	}

	if err := ext.OnInit(); err != nil {
		return nil, reject(log, GateInit, fmt.Errorf("initializing: %w", err))
	}

	log.WithFields(logrus.Fields{
		"version":  ext.Version(),
		"instance": ext.InstanceID(),
	}).Info("extension created")
	return ext, nil
}

// Gate applies the compatibility and permission gates to m using the
// current host version and security flags. It returns a *GateError on
// rejection.
func (f *Factory) Gate(name string, m *manifest.Manifest) error {
	if ok, reason := compat.Check(m.MinHostVersion, m.MaxHostVersion, f.opts.HostVersion()); !ok {
		return &GateError{Plugin: name, Gate: GateCompatibility, Reason: reason}
	}
	if ok, reason := security.Check(m.Security.RequiredPermissions, f.opts.Security()); !ok {
		return &GateError{Plugin: name, Gate: GatePermission, Reason: reason}
	}
	return nil
}

func reject(log logrus.FieldLogger, gate string, err error) error {
	reason := err.Error()
	var ge *GateError
	if errors.As(err, &ge) {
		reason = ge.Reason
	}
	log.WithFields(logrus.Fields{
		"gate":   gate,
		"reason": reason,
	}).Warn("extension rejected")
	return err
}

// Inspect runs the checks of Build that need no construction: manifest
// load, implementation lookup and both gates. Nothing is logged.
func (f *Factory) Inspect(name string) (*manifest.Manifest, error) {
	m, err := f.opts.Manifests.Load(name)
	if err != nil {
		return nil, err
	}
	if _, err := f.opts.Catalog.Resolve(name); err != nil {
		return m, err
	}
	return m, f.Gate(name, m)
}

// Manifests returns the store the factory loads from.
func (f *Factory) Manifests() *manifest.Store { return f.opts.Manifests }
