package domain_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/core/domain"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Backend
		wantErr bool
	}{
		{in: "", want: domain.BackendPip},
		{in: "pip", want: domain.BackendPip},
		{in: "conda", want: domain.BackendConda},
		{in: "mamba", want: domain.BackendMamba},
		{in: "micromamba", want: domain.BackendMicromamba},
		{in: "virtualenv", wantErr: true},
	}

	for _, tt := range tests {
		got, err := domain.ParseBackend(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, domain.ErrInvalidArgument), tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestBackend_IsConda(t *testing.T) {
	assert.False(t, domain.BackendPip.IsConda())
	assert.True(t, domain.BackendConda.IsConda())
	assert.True(t, domain.BackendMamba.IsConda())
	assert.True(t, domain.BackendMicromamba.IsConda())
	assert.Equal(t, "", domain.BackendPip.CondaCommand())
	assert.Equal(t, "micromamba", domain.BackendMicromamba.CondaCommand())
}

func TestNewEnvSpec_Canonicalization(t *testing.T) {
	spec, err := domain.NewEnvSpec(domain.EnvSpec{
		Name:    "dev",
		Backend: domain.BackendPip,
		PipDeps: []string{" requests ", "flask", "requests", "numpy >= 1.0", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"flask", "numpy>=1.0", "requests"}, spec.PipDeps)
	assert.Equal(t, domain.DefaultCondaExternals(), spec.CondaExternals)
}

func TestNewEnvSpec_Validation(t *testing.T) {
	tests := []struct {
		name    string
		spec    domain.EnvSpec
		wantErr error
	}{
		{
			name: "conda deps on pip backend",
			spec: domain.EnvSpec{
				Name: "dev", Backend: domain.BackendPip,
				CondaDeps: []string{"numpy"},
			},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name: "channels on pip backend",
			spec: domain.EnvSpec{
				Name: "dev", Backend: domain.BackendPip,
				Channels: []string{"conda-forge"},
			},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name: "locked conda without lock file",
			spec: domain.EnvSpec{
				Name: "dev", Backend: domain.BackendConda, Lock: true,
			},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name: "locked pip without requirement files",
			spec: domain.EnvSpec{
				Name: "dev", Backend: domain.BackendPip, Lock: true,
				PipDeps: []string{"requests"},
			},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name: "tracked file missing",
			spec: domain.EnvSpec{
				Name: "dev", Backend: domain.BackendPip,
				Requirements: []string{"requirements/absent.txt"},
			},
			wantErr: domain.ErrMissingDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewEnvSpec(tt.spec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestEnvSpec_Fingerprint(t *testing.T) {
	dir := t.TempDir()
	req := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(req, []byte("requests\n"), 0o600))

	hash := func(path string) (string, error) { return "digest-of-" + filepath.Base(path), nil }

	spec, err := domain.NewEnvSpec(domain.EnvSpec{
		Name:         "dev",
		Backend:      domain.BackendPip,
		Python:       "3.11",
		Requirements: []string{req},
		PipDeps:      []string{"flask"},
	})
	require.NoError(t, err)

	first, err := spec.Fingerprint(hash)
	require.NoError(t, err)
	second, err := spec.Fingerprint(hash)
	require.NoError(t, err)

	assert.True(t, domain.FingerprintsEqual(first, second))
	assert.Contains(t, string(first), "digest-of-requirements.txt")
	assert.Equal(t, byte('\n'), first[len(first)-1])

	// A different digest produces a different fingerprint.
	other, err := spec.Fingerprint(func(string) (string, error) { return "other", nil })
	require.NoError(t, err)
	assert.False(t, domain.FingerprintsEqual(first, other))

	// An empty stored fingerprint never matches.
	assert.False(t, domain.FingerprintsEqual(nil, first))
}

func TestEnvSpec_PackageSpec(t *testing.T) {
	spec := &domain.EnvSpec{Package: "."}
	assert.Equal(t, ".", spec.PackageSpec())

	spec.PackageExtras = []string{"dev", "test"}
	assert.Equal(t, ".[dev,test]", spec.PackageSpec())

	assert.Equal(t, "", (&domain.EnvSpec{}).PackageSpec())
}
