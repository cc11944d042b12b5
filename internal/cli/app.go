package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentx-labs/plugx/internal/config"
	"github.com/agentx-labs/plugx/internal/installer"
	"github.com/agentx-labs/plugx/internal/logging"
	"github.com/agentx-labs/plugx/internal/manifest"
	"github.com/agentx-labs/plugx/internal/plugins"
	"github.com/agentx-labs/plugx/internal/registry"
	"github.com/agentx-labs/plugx/internal/state"
	"github.com/agentx-labs/plugx/internal/userdata"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app is everything one command run needs.
type app struct {
	layout    userdata.Layout
	settings  *config.Settings
	log       *logrus.Logger
	manifests *manifest.Store
	backend   state.Backend
	registry  *registry.Registry
}

// openApp resolves the home directory, loads settings, opens the state
// backend and builds the registry. Nothing is loaded yet.
func openApp(cmd *cobra.Command) (*app, error) {
	layout, err := userdata.Resolve()
	if err != nil {
		return nil, err
	}
	settings, err := config.Load(layout.ConfigPath())
	if err != nil {
		return nil, err
	}

	level := settings.LogLevel()
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	log, err := logging.New(logging.Options{
		Level:  level,
		Format: settings.LogFormat(),
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	statePath := layout.StateDir()
	if settings.StateBackend() == state.BackendBolt {
		statePath = layout.StateDBPath()
	}
	backend, err := state.OpenBackend(settings.StateBackend(), statePath)
	if err != nil {
		return nil, err
	}

	manifests := manifest.NewStore(layout.PluginsDir())
	reg, err := registry.New(registry.Options{
		RecordPath:  layout.RecordPath(),
		Manifests:   manifests,
		Catalog:     plugins.Catalog(),
		Installer:   installer.New(settings.InstallCommand(), settings.ListCommand(), log),
		State:       backend,
		HostVersion: settings.HostVersion(),
		Logger:      log,
	})
	if err != nil {
		backend.Close()
		return nil, err
	}
	registry.SetDefault(reg)

	return &app{
		layout:    layout,
		settings:  settings,
		log:       log,
		manifests: manifests,
		backend:   backend,
		registry:  reg,
	}, nil
}

// loadAll opens the app and loads every enabled extension.
func loadAll(cmd *cobra.Command) (*app, error) {
	a, err := openApp(cmd)
	if err != nil {
		return nil, err
	}
	a.registry.LoadAll(cmd.Context())
	return a, nil
}

// ensureLoaded loads name for this run if LoadAll did not.
func (a *app) ensureLoaded(ctx context.Context, name string) error {
	if _, ok := a.registry.Get(name); ok {
		return nil
	}
	if err := a.registry.Load(ctx, name); err != nil {
		return fmt.Errorf("loading %s: %w", name, err)
	}
	return nil
}

// Close unloads every extension and closes the state backend.
func (a *app) Close() error {
	return errors.Join(a.registry.Close(), a.backend.Close())
}
