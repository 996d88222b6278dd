package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidArgument is returned when a caller supplies a missing or
	// conflicting parameter combination.
	ErrInvalidArgument = zerr.New("invalid argument")

	// ErrMissingDependency is returned when a referenced dependency file
	// does not exist at check time.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrStoreCorrupt is returned when a hash store exists but cannot be
	// parsed. It is propagated, not recovered; delete the store to reset.
	ErrStoreCorrupt = zerr.New("hash store corrupt")

	// ErrSubprocessFailed is returned when an external command exits non-zero.
	ErrSubprocessFailed = zerr.New("subprocess failed")

	// ErrEnvNotFound is returned when a requested environment is not declared
	// in the project configuration.
	ErrEnvNotFound = zerr.New("environment not found")

	// ErrSyncFailed is returned when one or more environments failed to
	// synchronize.
	ErrSyncFailed = zerr.New("sync failed")
)
