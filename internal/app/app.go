package app

import (
	"context"
	"maps"
	"runtime"
	"slices"
	"sync"

	"go.trai.ch/envsync/internal/adapters/config"
	"go.trai.ch/envsync/internal/adapters/shell"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// SyncOptions configure a Sync run.
type SyncOptions struct {
	// Update reinstalls dependencies even when unchanged.
	Update bool
	// ForceReinstall rewrites fingerprints and reinstalls from scratch.
	ForceReinstall bool
}

// App wires the configuration, sessions and installers together.
type App struct {
	loader      ports.ConfigLoader
	factory     *shell.Factory
	provisioner ports.Provisioner
	hasher      ports.FileHasher
	telemetry   ports.Telemetry
	logger      ports.Logger

	configPath string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	factory *shell.Factory,
	provisioner ports.Provisioner,
	hasher ports.FileHasher,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		loader:      loader,
		factory:     factory,
		provisioner: provisioner,
		hasher:      hasher,
		telemetry:   telemetry,
		logger:      logger,
		configPath:  config.DefaultFilename,
	}
}

// SetConfigPath overrides the project configuration location.
func (a *App) SetConfigPath(path string) {
	if path != "" {
		a.configPath = path
	}
}

// SetProvisioner substitutes the environment backend. Used to install a
// custom provisioning strategy from configuration or tests.
func (a *App) SetProvisioner(p ports.Provisioner) {
	if p != nil {
		a.provisioner = p
	}
}

// Sync synchronizes the named environments, or all declared environments
// when names is empty. Environments are processed sequentially; installers
// mutate shared package caches.
func (a *App) Sync(ctx context.Context, names []string, opts SyncOptions) error {
	specs, err := a.resolveSpecs(names)
	if err != nil {
		return err
	}
	defer a.telemetry.Close() //nolint:errcheck // Best effort flush

	var failed []string
	for _, spec := range specs {
		vctx, vertex := a.telemetry.Record(ctx, "sync "+spec.Name)

		session := a.factory.Session(spec)
		installer := NewInstaller(session, spec, a.provisioner, a.hasher, InstallOptions{
			Update: opts.Update,
			Force:  opts.ForceReinstall,
		})

		worked, err := installer.InstallAll(vctx)
		switch {
		case err != nil:
			vertex.Complete(err)
			a.logger.Error(err)
			failed = append(failed, spec.Name)
		case !worked:
			vertex.Cached()
		default:
			vertex.Complete(nil)
		}
	}

	if len(failed) > 0 {
		return zerr.With(zerr.Wrap(domain.ErrSyncFailed, "one or more environments failed"), "environments", failed)
	}
	return nil
}

// Check reports, per environment, whether its dependency specification
// changed since the last successful sync. Checks are read-only and fan out
// across environments.
func (a *App) Check(ctx context.Context, names []string) (map[string]bool, error) {
	specs, err := a.resolveSpecs(names)
	if err != nil {
		return nil, err
	}

	results := make(map[string]bool, len(specs))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, spec := range specs {
		g.Go(func() error {
			session := a.factory.Session(spec)
			installer := NewInstaller(session, spec, a.provisioner, a.hasher, InstallOptions{})

			changed, err := installer.Changed()
			if err != nil {
				return zerr.With(err, "env", spec.Name)
			}

			mu.Lock()
			results[spec.Name] = changed
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveSpecs loads the project config and resolves the named (or all)
// environment declarations into validated specs, sorted by name.
func (a *App) resolveSpecs(names []string) ([]*domain.EnvSpec, error) {
	project, err := a.loader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if len(names) == 0 {
		names = slices.Sorted(maps.Keys(project.Envs))
	}

	specs := make([]*domain.EnvSpec, 0, len(names))
	for _, name := range names {
		env, ok := project.Envs[name]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrEnvNotFound, "not declared in project config"), "env", name)
		}
		spec, err := a.resolveSpec(project, name, env)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
