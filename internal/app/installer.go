// Package app implements the application layer for envsync.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// fingerprintName is the per-environment fingerprint file in the session
// cache directory.
const fingerprintName = "env.json"

// InstallOptions configure an Installer.
type InstallOptions struct {
	// Update reinstalls dependencies even when unchanged.
	Update bool
	// Force treats the environment as changed regardless of fingerprint.
	Force bool
}

// Installer orchestrates provisioning and package installation for one
// environment. Install steps are skipped when the spec fingerprint matches
// the last successful run and no update was requested.
type Installer struct {
	session     ports.Session
	spec        *domain.EnvSpec
	provisioner ports.Provisioner
	hasher      ports.FileHasher
	opts        InstallOptions

	current []byte
}

// NewInstaller creates an Installer for the given environment.
func NewInstaller(
	session ports.Session,
	spec *domain.EnvSpec,
	provisioner ports.Provisioner,
	hasher ports.FileHasher,
	opts InstallOptions,
) *Installer {
	return &Installer{
		session:     session,
		spec:        spec,
		provisioner: provisioner,
		hasher:      hasher,
		opts:        opts,
	}
}

// Changed reports whether the spec fingerprint differs from the one
// persisted by the last successful InstallAll.
func (i *Installer) Changed() (bool, error) {
	current, err := i.fingerprint()
	if err != nil {
		return false, err
	}

	path, err := i.fingerprintPath()
	if err != nil {
		return false, err
	}

	previous, _ := os.ReadFile(path) //nolint:gosec,errcheck // Missing fingerprint means changed
	changed := i.opts.Force || !domain.FingerprintsEqual(previous, current)

	if changed {
		i.session.Log("environment changed")
	} else {
		i.session.Log("environment unchanged")
	}
	return changed, nil
}

// InstallAll provisions the environment and installs its dependencies and
// package. The fingerprint is persisted only after every step succeeded.
// It reports whether any work was performed.
func (i *Installer) InstallAll(ctx context.Context) (bool, error) {
	changed, err := i.Changed()
	if err != nil {
		return false, err
	}

	if err := i.provisioner.Provision(ctx, i.session, i.spec, changed); err != nil {
		return changed, err
	}

	if changed || i.opts.Update {
		if i.spec.Backend.IsConda() {
			if err := i.condaInstallDeps(ctx); err != nil {
				return true, err
			}
		}
		if err := i.pipInstallDeps(ctx); err != nil {
			return true, err
		}
		if err := i.pipInstallPackage(ctx); err != nil {
			return true, err
		}
	}

	if err := i.writeEnvLog(ctx); err != nil {
		return changed, err
	}

	return changed || i.opts.Update, i.saveFingerprint()
}

func (i *Installer) condaInstallDeps(ctx context.Context) error {
	if len(i.spec.CondaDeps) == 0 {
		return nil
	}

	deps := make([]string, 0, len(i.spec.CondaDeps)+1)
	if i.opts.Update {
		if i.spec.Backend == domain.BackendMicromamba {
			i.session.Warn("update with micromamba is unreliable; rebuild the environment instead")
		} else {
			deps = append(deps, "--update-all")
		}
	}
	deps = append(deps, i.spec.CondaDeps...)

	return i.session.CondaInstall(ctx, i.spec.Channels, deps...)
}

func (i *Installer) pipInstallDeps(ctx context.Context) error {
	if i.spec.Lock && !i.spec.Backend.IsConda() {
		// Locked virtualenvs are synchronized exactly to their lock files.
		if err := i.session.Install(ctx, "pip-tools"); err != nil {
			return err
		}
		argv := append([]string{"pip-sync"}, i.spec.Requirements...)
		return i.session.Run(ctx, argv)
	}

	args := make([]string, 0, 2*len(i.spec.Requirements)+2*len(i.spec.Constraints)+len(i.spec.PipDeps)+1)
	for _, req := range i.spec.Requirements {
		args = append(args, "-r", req)
	}
	for _, con := range i.spec.Constraints {
		args = append(args, "-c", con)
	}
	args = append(args, i.spec.PipDeps...)

	if len(args) == 0 {
		return nil
	}
	if i.opts.Update {
		args = append([]string{"--upgrade"}, args...)
	}
	return i.session.Install(ctx, args...)
}

func (i *Installer) pipInstallPackage(ctx context.Context) error {
	if i.spec.Package == "" {
		return nil
	}

	args := []string{"-e", i.spec.PackageSpec(), "--no-deps"}
	if i.opts.Update {
		args = append(args, "--upgrade")
	}
	return i.session.Install(ctx, args...)
}

// writeEnvLog records the interpreter version and installed packages in
// the session cache directory.
func (i *Installer) writeEnvLog(ctx context.Context) error {
	tmp, err := i.session.TmpDir()
	if err != nil {
		return err
	}
	logfile := filepath.Join(tmp, "env_info.txt")
	i.session.Log("writing environment log to " + logfile)

	var out strings.Builder

	version, err := i.session.Output(ctx, []string{i.pythonBin(), "--version"}, ports.Silent())
	if err != nil {
		return err
	}
	out.WriteString(version)

	var listing string
	if i.spec.Backend.IsConda() {
		listing, err = i.session.Output(ctx,
			[]string{i.spec.Backend.CondaCommand(), "list", "--prefix", i.session.EnvDir()}, ports.Silent())
	} else {
		listing, err = i.session.Output(ctx,
			[]string{i.pythonBin(), "-m", "pip", "list"}, ports.Silent())
	}
	if err != nil {
		return err
	}
	out.WriteString(listing)

	//nolint:gosec // Log file is project-local state
	if err := os.WriteFile(logfile, []byte(out.String()), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write environment log"), "path", logfile)
	}
	return nil
}

func (i *Installer) saveFingerprint() error {
	current, err := i.fingerprint()
	if err != nil {
		return err
	}
	path, err := i.fingerprintPath()
	if err != nil {
		return err
	}

	i.session.Log("saving fingerprint to " + path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create fingerprint directory")
	}
	//nolint:gosec // Fingerprint is project-local state
	if err := os.WriteFile(path, current, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write fingerprint"), "path", path)
	}
	return nil
}

func (i *Installer) fingerprint() ([]byte, error) {
	if i.current == nil {
		current, err := i.spec.Fingerprint(i.hasher.HashFile)
		if err != nil {
			return nil, err
		}
		i.current = current
	}
	return i.current, nil
}

func (i *Installer) fingerprintPath() (string, error) {
	if i.spec.FingerprintPath != "" {
		return i.spec.FingerprintPath, nil
	}
	tmp, err := i.session.TmpDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(tmp, fingerprintName), nil
}

func (i *Installer) pythonBin() string {
	return filepath.Join(i.session.EnvDir(), "bin", "python")
}
