package app

import (
	"os"
	"strings"

	"go.trai.ch/envsync/internal/adapters/fs"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// resolveSpec turns one environment declaration into a validated EnvSpec,
// applying project defaults and the requirements directory convention.
func (a *App) resolveSpec(project *domain.Project, name string, env domain.EnvConfig) (*domain.EnvSpec, error) {
	backend, err := domain.ParseBackend(env.Backend)
	if err != nil {
		return nil, zerr.With(err, "env", name)
	}

	python := env.Python
	if python == "" {
		python = project.Python
	}

	channels := env.Channels
	if len(channels) == 0 {
		channels = project.Channels
	}

	fallback := backend.IsConda()
	if env.LockFallback != nil {
		fallback = *env.LockFallback
	}

	spec := domain.EnvSpec{
		Name:           name,
		Backend:        backend,
		Python:         python,
		Lock:           env.Lock,
		PipDeps:        env.PipDeps,
		CondaDeps:      env.CondaDeps,
		Channels:       channels,
		CondaExternals: project.CondaExternals,
	}

	if backend.IsConda() {
		if err := a.resolveCondaEnvFile(&spec, env, fallback); err != nil {
			return nil, err
		}
	} else {
		if err := a.resolvePipFiles(&spec, env, fallback); err != nil {
			return nil, err
		}
	}

	if env.Package {
		if project.Package == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidArgument,
				"environment wants the package but the project declares none"), "env", name)
		}
		spec.Package = project.Package
		spec.PackageExtras = env.Extras
	}

	resolved, err := domain.NewEnvSpec(spec)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// resolveCondaEnvFile locates the environment (or conda-lock) file for a
// conda-backed environment. The file name defaults to the environment name;
// a single requirements entry overrides it.
func (a *App) resolveCondaEnvFile(spec *domain.EnvSpec, env domain.EnvConfig, fallback bool) error {
	fileName := spec.Name
	switch len(env.Requirements) {
	case 0:
	case 1:
		fileName = env.Requirements[0]
	default:
		return zerr.With(zerr.Wrap(domain.ErrInvalidArgument,
			"conda backends take a single environment file"), "env", spec.Name)
	}
	if len(env.Constraints) > 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidArgument,
			"constraints only apply to pip backends"), "env", spec.Name)
	}

	locked, path, err := a.resolveFile(fileName, domain.ReqQuery{
		Ext:           ".yaml",
		PythonVersion: spec.Python,
		Lock:          spec.Lock,
	}, fallback)
	if err != nil {
		return zerr.With(err, "env", spec.Name)
	}
	if spec.Lock && !locked {
		a.logger.Warn("no lock file found, falling back to " + path)
	}
	a.warnStaleLock(locked, path)

	spec.Lock = locked
	spec.CondaEnvFile = path
	return nil
}

// resolvePipFiles resolves requirement and constraint entries for a pip
// environment. Lock resolution applies to requirements only; constraints
// are always taken as-is.
func (a *App) resolvePipFiles(spec *domain.EnvSpec, env domain.EnvConfig, fallback bool) error {
	allLocked := spec.Lock
	for _, entry := range env.Requirements {
		locked, path, err := a.resolveFile(entry, domain.ReqQuery{
			Ext:           ".txt",
			PythonVersion: spec.Python,
			Lock:          spec.Lock,
		}, fallback)
		if err != nil {
			return zerr.With(err, "env", spec.Name)
		}
		if spec.Lock && !locked {
			a.logger.Warn("no lock file found, falling back to " + path)
			allLocked = false
		}
		a.warnStaleLock(locked, path)
		spec.Requirements = append(spec.Requirements, path)
	}
	spec.Lock = allLocked

	for _, entry := range env.Constraints {
		_, path, err := a.resolveFile(entry, domain.ReqQuery{
			Ext:           ".txt",
			PythonVersion: spec.Python,
		}, false)
		if err != nil {
			return zerr.With(err, "env", spec.Name)
		}
		spec.Constraints = append(spec.Constraints, path)
	}
	return nil
}

// resolveFile resolves one requirement entry. Entries that name an existing
// file, or carry a path separator, bypass the naming convention.
func (a *App) resolveFile(entry string, q domain.ReqQuery, fallback bool) (bool, string, error) {
	if strings.ContainsRune(entry, os.PathSeparator) || strings.ContainsRune(entry, '/') {
		if _, err := os.Stat(entry); err != nil {
			return false, "", zerr.With(zerr.Wrap(domain.ErrMissingDependency, "requirement file not found"), "path", entry)
		}
		return q.Lock, entry, nil
	}

	q.Name = entry
	if fallback {
		return domain.InferRequirementPathWithFallback(q)
	}
	q.CheckExists = true
	path, err := domain.InferRequirementPath(q)
	return q.Lock, path, err
}

// warnStaleLock warns when a lock file is older than the source file it was
// generated from. The source is reconstructed from the lock naming scheme.
func (a *App) warnStaleLock(locked bool, lockPath string) {
	if !locked {
		return
	}
	source := lockSource(lockPath)
	if source == "" {
		return
	}
	outdated, err := fs.TargetOutdated(lockPath, []string{source}, true)
	if err == nil && outdated {
		a.logger.Warn("lock file " + lockPath + " is older than " + source + ", consider re-locking")
	}
}

// lockSource maps a locked requirement path back to its unlocked source,
// or "" when the name does not follow the lock convention.
func lockSource(lockPath string) string {
	rest, ok := strings.CutPrefix(lockPath, domain.RequirementsDir+"/lock/")
	if !ok {
		return ""
	}
	if base, ok := strings.CutSuffix(rest, "-conda-lock.yml"); ok {
		return domain.RequirementsDir + "/" + base + ".yaml"
	}
	if strings.HasSuffix(rest, ".txt") {
		return domain.RequirementsDir + "/" + rest
	}
	return ""
}
