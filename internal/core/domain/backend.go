// Package domain holds the core value types for envsync.
package domain

import "go.trai.ch/zerr"

// Backend identifies the tool that owns an environment.
type Backend string

const (
	// BackendPip manages a plain virtualenv with pip.
	BackendPip Backend = "pip"
	// BackendConda manages a conda environment with the conda CLI.
	BackendConda Backend = "conda"
	// BackendMamba manages a conda environment with the mamba CLI.
	BackendMamba Backend = "mamba"
	// BackendMicromamba manages a conda environment with the micromamba CLI.
	BackendMicromamba Backend = "micromamba"
)

// ParseBackend validates a backend name from configuration.
// An empty name defaults to pip.
func ParseBackend(name string) (Backend, error) {
	switch Backend(name) {
	case "":
		return BackendPip, nil
	case BackendPip, BackendConda, BackendMamba, BackendMicromamba:
		return Backend(name), nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidArgument, "unknown backend"), "backend", name)
	}
}

// IsConda reports whether the backend is conda-flavored.
func (b Backend) IsConda() bool {
	switch b {
	case BackendConda, BackendMamba, BackendMicromamba:
		return true
	default:
		return false
	}
}

// CondaCommand returns the CLI command for a conda-flavored backend.
// It returns an empty string for pip.
func (b Backend) CondaCommand() string {
	if !b.IsConda() {
		return ""
	}
	return string(b)
}

// String returns the backend name.
func (b Backend) String() string {
	return string(b)
}

// DefaultCondaExternals lists the external commands a conda-backed session
// is allowed to run outside its environment. It is a configuration default,
// not process-global state; callers pass their own list through EnvSpec.
func DefaultCondaExternals() []string {
	return []string{"conda", "mamba", "micromamba", "conda-lock"}
}
