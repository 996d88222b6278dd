package shell

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// WorkDirName is the directory holding managed environments and session
// caches, relative to the project root.
const WorkDirName = ".envsync"

var _ ports.Session = (*Session)(nil)

// Session implements ports.Session against the pip/conda CLIs.
type Session struct {
	name      string
	backend   domain.Backend
	python    string
	externals []string

	root   string
	logger ports.Logger
	runner *Runner
}

// Factory builds sessions rooted in a working directory.
type Factory struct {
	root   string
	logger ports.Logger
	runner *Runner
}

// NewFactory creates a session factory. Environments and caches live
// under root/.envsync.
func NewFactory(root string, logger ports.Logger) *Factory {
	return &Factory{
		root:   root,
		logger: logger,
		runner: NewRunner(logger),
	}
}

// Session creates the session for one environment spec.
func (f *Factory) Session(spec *domain.EnvSpec) ports.Session {
	return &Session{
		name:      spec.Name,
		backend:   spec.Backend,
		python:    spec.Python,
		externals: spec.CondaExternals,
		root:      f.root,
		logger:    f.logger,
		runner:    f.runner,
	}
}

// Name returns the environment name.
func (s *Session) Name() string { return s.name }

// Python returns the interpreter version.
func (s *Session) Python() string { return s.python }

// Backend returns the environment backend.
func (s *Session) Backend() domain.Backend { return s.backend }

// EnvDir returns the environment's location on disk.
func (s *Session) EnvDir() string {
	return filepath.Join(s.root, WorkDirName, "envs", s.name)
}

// TmpDir returns the session cache directory, creating it on demand.
func (s *Session) TmpDir() (string, error) {
	dir := filepath.Join(s.root, WorkDirName, "tmp", s.name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create session tmp dir"), "dir", dir)
	}
	return dir, nil
}

// Log records an informational session message.
func (s *Session) Log(msg string) {
	s.logger.Info("[" + s.name + "] " + msg)
}

// Warn records a session warning.
func (s *Session) Warn(msg string) {
	s.logger.Warn("[" + s.name + "] " + msg)
}

// Run executes a command against the environment. Conda tooling commands
// must be listed in the spec's allowed externals.
func (s *Session) Run(ctx context.Context, argv []string, opts ...ports.RunOption) error {
	if err := s.checkExternal(argv); err != nil {
		return err
	}
	return s.runner.Run(ctx, s.root, argv, opts...)
}

// Output executes a command and returns its captured stdout.
func (s *Session) Output(ctx context.Context, argv []string, opts ...ports.RunOption) (string, error) {
	if err := s.checkExternal(argv); err != nil {
		return "", err
	}
	return s.runner.Output(ctx, s.root, argv, opts...)
}

// Install installs pip arguments into the environment's interpreter.
func (s *Session) Install(ctx context.Context, args ...string) error {
	argv := append([]string{s.pythonBin(), "-m", "pip", "install"}, args...)
	return s.runner.Run(ctx, s.root, argv)
}

// CondaInstall installs conda specifiers into the environment prefix.
func (s *Session) CondaInstall(ctx context.Context, channels []string, args ...string) error {
	if !s.backend.IsConda() {
		return zerr.With(zerr.Wrap(domain.ErrInvalidArgument,
			"conda install on a non-conda backend"), "env", s.name)
	}

	argv := []string{s.backend.CondaCommand(), "install", "--yes", "--prefix", s.EnvDir()}
	for _, ch := range channels {
		argv = append(argv, "--channel", ch)
	}
	argv = append(argv, args...)
	return s.Run(ctx, argv)
}

// condaTools are commands gated by the allowed-externals list.
var condaTools = []string{"conda", "mamba", "micromamba", "conda-lock"}

func (s *Session) checkExternal(argv []string) error {
	if len(argv) == 0 {
		return zerr.Wrap(domain.ErrInvalidArgument, "empty command")
	}
	name := filepath.Base(argv[0])
	if slices.Contains(condaTools, name) && !slices.Contains(s.externals, name) {
		gated := zerr.With(zerr.Wrap(domain.ErrInvalidArgument, "external command not allowed"), "command", name)
		return zerr.With(gated, "env", s.name)
	}
	return nil
}

func (s *Session) pythonBin() string {
	return filepath.Join(s.EnvDir(), "bin", "python")
}
