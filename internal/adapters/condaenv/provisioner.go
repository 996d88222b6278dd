package condaenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/envsync/internal/engine/detect"
	"go.trai.ch/zerr"
)

var _ ports.Provisioner = (*Provisioner)(nil)

// Provisioner is the default environment backend. For conda flavors it
// creates, updates or reuses the environment from its environment file;
// for pip it creates a virtualenv when the location is empty.
type Provisioner struct {
	detector *detect.Detector
}

// NewProvisioner creates the default Provisioner.
func NewProvisioner(detector *detect.Detector) *Provisioner {
	return &Provisioner{detector: detector}
}

// Provision ensures the environment exists and matches the spec.
func (p *Provisioner) Provision(ctx context.Context, session ports.Session, spec *domain.EnvSpec, changed bool) error {
	if !spec.Backend.IsConda() {
		return p.provisionVenv(ctx, session, spec)
	}
	return p.provisionConda(ctx, session, spec, changed)
}

func (p *Provisioner) provisionVenv(ctx context.Context, session ports.Session, spec *domain.EnvSpec) error {
	if !cleanLocation(session.EnvDir()) {
		session.Log("reusing virtualenv " + session.EnvDir())
		return nil
	}

	python := "python3"
	if spec.Python != "" {
		python = "python" + spec.Python
	}
	session.Log("creating virtualenv " + session.EnvDir())
	return session.Run(ctx, []string{python, "-m", "venv", session.EnvDir()})
}

func (p *Provisioner) provisionConda(ctx context.Context, session ports.Session, spec *domain.EnvSpec, changed bool) error {
	if spec.CondaEnvFile == "" {
		return zerr.With(zerr.Wrap(domain.ErrInvalidArgument,
			"conda backend requires an environment file"), "env", spec.Name)
	}

	tmp, err := session.TmpDir()
	if err != nil {
		return err
	}
	hashPath := filepath.Join(tmp, filepath.Base(spec.CondaEnvFile)+detect.HashSuffix)

	create := cleanLocation(session.EnvDir())

	// The hash store is only committed when the conda command succeeded,
	// so a partial create/update never looks fresh on the next run.
	_, err = p.detector.WithChangeDetection(detect.Options{
		Deps:       []string{spec.CondaEnvFile},
		HashPath:   hashPath,
		ForceWrite: create,
	}, func(fileChanged bool) error {
		var action string
		switch {
		case create:
			action = "create"
		case changed || fileChanged:
			action = "update"
		default:
			session.Log("reusing conda environment " + session.EnvDir())
			return nil
		}

		if env, parseErr := ParseEnvFile(spec.CondaEnvFile); parseErr == nil {
			session.Log(fmt.Sprintf("%s conda environment from %s (%d conda deps, %d pip deps)",
				action, spec.CondaEnvFile, len(env.CondaDeps), len(env.PipDeps)))
		} else if !spec.Lock {
			// Lock files are not environment YAML; anything else should parse.
			return parseErr
		}

		return session.Run(ctx, condaArgv(session.EnvDir(), spec, action))
	})
	return err
}

// condaArgv builds the backend command line for create or update.
func condaArgv(envDir string, spec *domain.EnvSpec, action string) []string {
	micromamba := spec.Backend == domain.BackendMicromamba

	if spec.Lock && !micromamba {
		argv := []string{"conda-lock", "install"}
		if spec.Backend == domain.BackendConda {
			argv = append(argv, "--no-mamba")
		} else {
			argv = append(argv, "--mamba")
		}
		return append(argv, "--prefix", envDir, spec.CondaEnvFile)
	}

	argv := []string{spec.Backend.CondaCommand()}
	if !micromamba {
		argv = append(argv, "env")
	}
	argv = append(argv, action)
	if action == "update" {
		argv = append(argv, "--prune")
	}
	if micromamba {
		argv = append(argv, "--yes")
	}
	return append(argv, "--prefix", envDir, "--file", spec.CondaEnvFile)
}

// cleanLocation reports whether the environment location is absent or
// empty, meaning a fresh create is needed.
func cleanLocation(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return true
	}
	return len(entries) == 0
}
