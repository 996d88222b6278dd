// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/envsync/internal/core/domain"
)

// RunConfig holds per-invocation options for Session.Run.
type RunConfig struct {
	// Env overrides environment variables as "KEY=VALUE" entries.
	Env []string
	// OKCodes are exit codes treated as success besides zero.
	OKCodes []int
	// Silent suppresses command output logging.
	Silent bool
}

// RunOption is a functional option for configuring a command run.
type RunOption func(*RunConfig)

// WithEnv overrides environment variables for the command.
func WithEnv(env []string) RunOption {
	return func(c *RunConfig) { c.Env = append(c.Env, env...) }
}

// AllowExitCodes treats the given exit codes as success.
func AllowExitCodes(codes ...int) RunOption {
	return func(c *RunConfig) { c.OKCodes = append(c.OKCodes, codes...) }
}

// Silent suppresses command output logging.
func Silent() RunOption {
	return func(c *RunConfig) { c.Silent = true }
}

// Session is the environment/session collaborator: it runs commands and
// installs packages against one managed environment. Implementations wrap
// the actual virtualenv/conda tooling; the core treats it as opaque.
//
//go:generate mockgen -source=session.go -destination=mocks/mock_session.go -package=mocks
type Session interface {
	// Name returns the environment name.
	Name() string
	// Log records an informational session message.
	Log(msg string)
	// Warn records a session warning.
	Warn(msg string)
	// Run executes a command against the environment.
	Run(ctx context.Context, argv []string, opts ...RunOption) error
	// Output executes a command and returns its combined stdout.
	Output(ctx context.Context, argv []string, opts ...RunOption) (string, error)
	// Install installs pip arguments into the environment.
	Install(ctx context.Context, args ...string) error
	// CondaInstall installs conda package specifiers into the environment.
	CondaInstall(ctx context.Context, channels []string, args ...string) error
	// TmpDir returns the session's cache directory, creating it on demand.
	TmpDir() (string, error)
	// Python returns the interpreter version, e.g. "3.11".
	Python() string
	// Backend returns the environment backend.
	Backend() domain.Backend
	// EnvDir returns the environment's location on disk.
	EnvDir() string
}
