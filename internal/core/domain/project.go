package domain

// Project is the parsed project configuration: shared defaults plus the
// declared environments. Environment entries are raw declarations; the
// app layer resolves them into validated EnvSpecs.
type Project struct {
	// Python is the default interpreter version for all environments.
	Python string
	// Package is the default editable package, "" when none.
	Package string
	// Channels are default conda channels.
	Channels []string
	// CondaExternals overrides the allowed external commands for
	// conda-backed sessions.
	CondaExternals []string
	// Envs maps environment name to its declaration.
	Envs map[string]EnvConfig
}

// EnvConfig is one environment declaration from the project config.
type EnvConfig struct {
	// Backend name; empty means pip.
	Backend string
	// Python overrides the project default interpreter version.
	Python string
	// Lock selects locked requirement files.
	Lock bool
	// LockFallback allows falling back to unlocked files when the locked
	// variant is absent. Defaults to true for conda backends.
	LockFallback *bool
	// Requirements are requirement file names resolved through the
	// requirements directory convention, or literal paths.
	Requirements []string
	// Constraints are pip constraint file names or paths.
	Constraints []string
	// PipDeps, CondaDeps and Channels are ad-hoc specifiers.
	PipDeps   []string
	CondaDeps []string
	Channels  []string
	// Package installs the project package editable when true.
	Package bool
	// Extras are package extras for the editable install.
	Extras []string
}
