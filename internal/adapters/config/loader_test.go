package config_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/adapters/config"
	"go.trai.ch/envsync/internal/adapters/logger"
	"go.trai.ch/envsync/internal/core/domain"
)

const sampleConfig = `
version = "1"
python = "3.11"
channels = ["conda-forge"]

[envs.dev]
backend = "mamba"
requirements = ["dev"]
package = true
extras = ["dev"]

[envs.test]
pip = ["pytest", "pytest-cov"]
lock = true
lock_fallback = false
requirements = ["test"]

[envs.docs]
python = "3.12"
pip = ["sphinx"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newLoader() *config.Loader {
	return config.NewLoader(logger.NewWithOutput(io.Discard))
}

func TestLoader_Load(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	project, err := newLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3.11", project.Python)
	assert.Equal(t, []string{"conda-forge"}, project.Channels)
	require.Len(t, project.Envs, 3)

	dev := project.Envs["dev"]
	assert.Equal(t, "mamba", dev.Backend)
	assert.Equal(t, []string{"dev"}, dev.Requirements)
	assert.True(t, dev.Package)
	assert.Equal(t, []string{"dev"}, dev.Extras)
	assert.Nil(t, dev.LockFallback)

	test := project.Envs["test"]
	assert.True(t, test.Lock)
	require.NotNil(t, test.LockFallback)
	assert.False(t, *test.LockFallback)
	assert.Equal(t, []string{"pytest", "pytest-cov"}, test.PipDeps)

	docs := project.Envs["docs"]
	assert.Equal(t, "3.12", docs.Python)
}

func TestLoader_Load_EnvOverride(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("ENVSYNC_PYTHON", "3.13")

	project, err := newLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "3.13", project.Python)
}

func TestLoader_Load_NoEnvs(t *testing.T) {
	path := writeConfig(t, "python = \"3.11\"\n")

	_, err := newLoader().Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidArgument))
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := newLoader().Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoader_Load_PackageDefaultsFromPyProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte("[envs.dev]\npip = [\"requests\"]\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"),
		[]byte("[project]\nname = \"mypkg\"\n"), 0o600))

	project, err := newLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", project.Package)
}

func TestLoadPyProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[project]
name = "mypkg"

[project.optional-dependencies]
dev = ["pytest"]
docs = ["sphinx"]
`), 0o600))

	meta, err := config.LoadPyProject(path)
	require.NoError(t, err)
	assert.Equal(t, "mypkg", meta.Name)
	assert.ElementsMatch(t, []string{"dev", "docs"}, meta.Extras)
}

func TestExists(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	assert.True(t, config.Exists(path))
	assert.False(t, config.Exists(filepath.Join(t.TempDir(), "absent.toml")))
}
