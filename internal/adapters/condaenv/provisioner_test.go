package condaenv_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/adapters/condaenv"
	"go.trai.ch/envsync/internal/adapters/fs"
	"go.trai.ch/envsync/internal/adapters/logger"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/envsync/internal/core/ports/mocks"
	"go.trai.ch/envsync/internal/engine/detect"
	"go.uber.org/mock/gomock"
)

func newProvisioner() *condaenv.Provisioner {
	detector := detect.NewDetector(fs.NewHasher(), logger.NewWithOutput(io.Discard))
	return condaenv.NewProvisioner(detector)
}

func setupSession(t *testing.T, ctrl *gomock.Controller, envDir, tmpDir string) *mocks.MockSession {
	t.Helper()
	session := mocks.NewMockSession(ctrl)
	session.EXPECT().EnvDir().Return(envDir).AnyTimes()
	session.EXPECT().TmpDir().Return(tmpDir, nil).AnyTimes()
	session.EXPECT().Log(gomock.Any()).AnyTimes()
	session.EXPECT().Warn(gomock.Any()).AnyTimes()
	return session
}

func writeEnvFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "environment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dependencies:\n  - python=3.11\n"), 0o600))
	return path
}

func TestProvisioner_Venv_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	envDir := filepath.Join(dir, "envs", "dev")
	session := setupSession(t, ctrl, envDir, filepath.Join(dir, "tmp"))

	var argv []string
	session.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got []string, _ ...ports.RunOption) error {
			argv = got
			return nil
		})

	spec := &domain.EnvSpec{Name: "dev", Backend: domain.BackendPip, Python: "3.11"}
	require.NoError(t, newProvisioner().Provision(context.Background(), session, spec, true))

	assert.Equal(t, []string{"python3.11", "-m", "venv", envDir}, argv)
}

func TestProvisioner_Venv_Reuse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	envDir := filepath.Join(dir, "envs", "dev")
	require.NoError(t, os.MkdirAll(filepath.Join(envDir, "bin"), 0o750))
	session := setupSession(t, ctrl, envDir, filepath.Join(dir, "tmp"))

	// No Run expectation: an existing virtualenv is left alone.
	spec := &domain.EnvSpec{Name: "dev", Backend: domain.BackendPip, Python: "3.11"}
	require.NoError(t, newProvisioner().Provision(context.Background(), session, spec, false))
}

func TestProvisioner_Conda_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	envDir := filepath.Join(dir, "envs", "dev")
	tmpDir := filepath.Join(dir, "tmp")
	require.NoError(t, os.MkdirAll(tmpDir, 0o750))
	envFile := writeEnvFile(t, dir)
	session := setupSession(t, ctrl, envDir, tmpDir)

	var argv []string
	session.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got []string, _ ...ports.RunOption) error {
			argv = got
			return nil
		})

	spec := &domain.EnvSpec{Name: "dev", Backend: domain.BackendConda, CondaEnvFile: envFile}
	require.NoError(t, newProvisioner().Provision(context.Background(), session, spec, false))

	assert.Equal(t, []string{"conda", "env", "create", "--prefix", envDir, "--file", envFile}, argv)
	assert.FileExists(t, filepath.Join(tmpDir, "environment.yaml"+detect.HashSuffix),
		"hash store committed after a successful create")
}

func TestProvisioner_Conda_Reuse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	envDir := filepath.Join(dir, "envs", "dev")
	require.NoError(t, os.MkdirAll(filepath.Join(envDir, "conda-meta"), 0o750))
	tmpDir := filepath.Join(dir, "tmp")
	require.NoError(t, os.MkdirAll(tmpDir, 0o750))
	envFile := writeEnvFile(t, dir)
	session := setupSession(t, ctrl, envDir, tmpDir)

	// Seed the hash store so nothing looks changed.
	detector := detect.NewDetector(fs.NewHasher(), logger.NewWithOutput(io.Discard))
	hashPath := filepath.Join(tmpDir, "environment.yaml"+detect.HashSuffix)
	out, err := detector.Check([]string{envFile}, "", hashPath)
	require.NoError(t, err)
	require.NoError(t, detect.WriteHashes(hashPath, out.Hashes))

	spec := &domain.EnvSpec{Name: "dev", Backend: domain.BackendConda, CondaEnvFile: envFile}
	require.NoError(t, newProvisioner().Provision(context.Background(), session, spec, false))
}

func TestProvisioner_Conda_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	envDir := filepath.Join(dir, "envs", "dev")
	require.NoError(t, os.MkdirAll(filepath.Join(envDir, "conda-meta"), 0o750))
	tmpDir := filepath.Join(dir, "tmp")
	require.NoError(t, os.MkdirAll(tmpDir, 0o750))
	envFile := writeEnvFile(t, dir)
	session := setupSession(t, ctrl, envDir, tmpDir)

	var argv []string
	session.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got []string, _ ...ports.RunOption) error {
			argv = got
			return nil
		})

	// The spec fingerprint changed even though the env file did not.
	detector := detect.NewDetector(fs.NewHasher(), logger.NewWithOutput(io.Discard))
	hashPath := filepath.Join(tmpDir, "environment.yaml"+detect.HashSuffix)
	out, err := detector.Check([]string{envFile}, "", hashPath)
	require.NoError(t, err)
	require.NoError(t, detect.WriteHashes(hashPath, out.Hashes))

	spec := &domain.EnvSpec{Name: "dev", Backend: domain.BackendMamba, CondaEnvFile: envFile}
	require.NoError(t, newProvisioner().Provision(context.Background(), session, spec, true))

	assert.Equal(t, []string{"mamba", "env", "update", "--prune", "--prefix", envDir, "--file", envFile}, argv)
}

func TestProvisioner_Conda_Lock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	envDir := filepath.Join(dir, "envs", "dev")
	tmpDir := filepath.Join(dir, "tmp")
	require.NoError(t, os.MkdirAll(tmpDir, 0o750))
	lockFile := filepath.Join(dir, "dev-conda-lock.yml")
	require.NoError(t, os.WriteFile(lockFile, []byte("locked content\n"), 0o600))
	session := setupSession(t, ctrl, envDir, tmpDir)

	var argv []string
	session.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got []string, _ ...ports.RunOption) error {
			argv = got
			return nil
		})

	spec := &domain.EnvSpec{
		Name: "dev", Backend: domain.BackendMamba, Lock: true, CondaEnvFile: lockFile,
	}
	require.NoError(t, newProvisioner().Provision(context.Background(), session, spec, false))

	assert.Equal(t, []string{"conda-lock", "install", "--mamba", "--prefix", envDir, lockFile}, argv)
}

func TestProvisioner_Micromamba_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	envDir := filepath.Join(dir, "envs", "dev")
	tmpDir := filepath.Join(dir, "tmp")
	require.NoError(t, os.MkdirAll(tmpDir, 0o750))
	envFile := writeEnvFile(t, dir)
	session := setupSession(t, ctrl, envDir, tmpDir)

	var argv []string
	session.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, got []string, _ ...ports.RunOption) error {
			argv = got
			return nil
		})

	spec := &domain.EnvSpec{Name: "dev", Backend: domain.BackendMicromamba, CondaEnvFile: envFile}
	require.NoError(t, newProvisioner().Provision(context.Background(), session, spec, false))

	// micromamba has no "env" subcommand and needs --yes.
	assert.Equal(t, []string{"micromamba", "create", "--yes", "--prefix", envDir, "--file", envFile}, argv)
}

func TestProvisioner_Conda_MissingEnvFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	session := setupSession(t, ctrl, filepath.Join(dir, "envs", "dev"), filepath.Join(dir, "tmp"))

	spec := &domain.EnvSpec{Name: "dev", Backend: domain.BackendConda}
	err := newProvisioner().Provision(context.Background(), session, spec, false)
	require.Error(t, err)
}
