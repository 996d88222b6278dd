package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func boolPtr(b bool) *bool { return &b }

func TestApp_Check_ResolvesCondaEnvFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newAppFixture(t, ctrl)

	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("requirements", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join("requirements", "py311-dev.yaml"),
		[]byte("dependencies:\n  - python=3.11\n"), 0o600))

	f.loader.EXPECT().Load("envsync.toml").Return(pipProject(map[string]domain.EnvConfig{
		"dev": {Backend: "mamba"},
	}), nil)

	results, err := f.app.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"dev": true}, results)
}

func TestApp_Check_CondaLockFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newAppFixture(t, ctrl)

	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("requirements", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join("requirements", "py311-dev.yaml"),
		[]byte("dependencies:\n  - python=3.11\n"), 0o600))

	// Lock requested but no lock file present: conda backends fall back.
	f.loader.EXPECT().Load("envsync.toml").Return(pipProject(map[string]domain.EnvConfig{
		"dev": {Backend: "conda", Lock: true},
	}), nil)

	results, err := f.app.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"dev": true}, results)
}

func TestApp_Check_LockFallbackDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newAppFixture(t, ctrl)

	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("requirements", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join("requirements", "py311-dev.yaml"),
		[]byte("dependencies:\n  - python=3.11\n"), 0o600))

	f.loader.EXPECT().Load("envsync.toml").Return(pipProject(map[string]domain.EnvConfig{
		"dev": {Backend: "conda", Lock: true, LockFallback: boolPtr(false)},
	}), nil)

	_, err := f.app.Check(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingDependency))
}

func TestApp_Check_LiteralRequirementPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newAppFixture(t, ctrl)

	dir := t.TempDir()
	req := filepath.Join(dir, "deps.txt")
	require.NoError(t, os.WriteFile(req, []byte("requests\n"), 0o600))

	f.loader.EXPECT().Load("envsync.toml").Return(pipProject(map[string]domain.EnvConfig{
		"dev": {Requirements: []string{req}},
	}), nil)

	results, err := f.app.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"dev": true}, results)
}

func TestApp_Check_InvalidBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newAppFixture(t, ctrl)

	f.loader.EXPECT().Load("envsync.toml").Return(pipProject(map[string]domain.EnvConfig{
		"dev": {Backend: "virtualenv"},
	}), nil)

	_, err := f.app.Check(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestApp_Check_PackageWithoutProjectPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newAppFixture(t, ctrl)

	f.loader.EXPECT().Load("envsync.toml").Return(pipProject(map[string]domain.EnvConfig{
		"dev": {PipDeps: []string{"requests"}, Package: true},
	}), nil)

	_, err := f.app.Check(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestApp_Check_ProjectDefaultsApply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newAppFixture(t, ctrl)

	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("requirements", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join("requirements", "py312-dev.yaml"),
		[]byte("dependencies:\n  - python=3.12\n"), 0o600))

	// The env's python override picks the py312 file over the project default.
	project := pipProject(map[string]domain.EnvConfig{
		"dev": {Backend: "conda", Python: "3.12"},
	})
	f.loader.EXPECT().Load("envsync.toml").Return(project, nil)

	results, err := f.app.Check(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"dev": true}, results)
}
