package ports

import (
	"context"

	"go.trai.ch/envsync/internal/core/domain"
)

// Provisioner creates or refreshes the environment backing a session.
// It is an explicit strategy: the default backend is the condaenv adapter,
// and callers may substitute any implementation via configuration instead
// of overriding library internals.
//
//go:generate mockgen -source=provisioner.go -destination=mocks/mock_provisioner.go -package=mocks
type Provisioner interface {
	// Provision ensures the environment exists and matches the spec.
	// changed reports whether the spec fingerprint differs from the last
	// successful run.
	Provision(ctx context.Context, session Session, spec *domain.EnvSpec, changed bool) error
}

// ProvisionerFunc adapts a function to the Provisioner interface. It is the
// custom-backend variant.
type ProvisionerFunc func(ctx context.Context, session Session, spec *domain.EnvSpec, changed bool) error

// Provision calls the wrapped function.
func (f ProvisionerFunc) Provision(ctx context.Context, session Session, spec *domain.EnvSpec, changed bool) error {
	return f(ctx, session, spec, changed)
}
