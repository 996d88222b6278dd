package condaenv_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envsync/internal/adapters/condaenv"
)

func TestParseEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: dev
channels:
  - conda-forge
dependencies:
  - python=3.11
  - numpy
  - pip
  - pip:
      - requests
      - flask
`), 0o600))

	env, err := condaenv.ParseEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", env.Name)
	assert.Equal(t, []string{"conda-forge"}, env.Channels)
	assert.Equal(t, []string{"python=3.11", "numpy", "pip"}, env.CondaDeps)
	assert.Equal(t, []string{"requests", "flask"}, env.PipDeps)
}

func TestParseEnvFile_NoPipSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dependencies:\n  - python=3.11\n"), 0o600))

	env, err := condaenv.ParseEnvFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"python=3.11"}, env.CondaDeps)
	assert.Empty(t, env.PipDeps)
}

func TestParseEnvFile_Missing(t *testing.T) {
	_, err := condaenv.ParseEnvFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestParseEnvFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\t{not yaml"), 0o600))

	_, err := condaenv.ParseEnvFile(path)
	require.Error(t, err)
}
