// Package config provides the project configuration loader for envsync.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultFilename is the project configuration filename.
const DefaultFilename = "envsync.toml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a TOML file with an
// ENVSYNC_* environment variable overlay.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// projectDTO mirrors the envsync.toml structure.
type projectDTO struct {
	Version        string            `mapstructure:"version"`
	Python         string            `mapstructure:"python"`
	Package        string            `mapstructure:"package"`
	Channels       []string          `mapstructure:"channels"`
	CondaExternals []string          `mapstructure:"conda_externals"`
	Envs           map[string]envDTO `mapstructure:"envs"`
}

type envDTO struct {
	Backend      string   `mapstructure:"backend"`
	Python       string   `mapstructure:"python"`
	Lock         bool     `mapstructure:"lock"`
	LockFallback *bool    `mapstructure:"lock_fallback"`
	Requirements []string `mapstructure:"requirements"`
	Constraints  []string `mapstructure:"constraints"`
	Pip          []string `mapstructure:"pip"`
	Conda        []string `mapstructure:"conda"`
	Channels     []string `mapstructure:"channels"`
	Package      bool     `mapstructure:"package"`
	Extras       []string `mapstructure:"extras"`
}

// Load reads the configuration file at path. Scalar settings may be
// overridden through the environment, e.g. ENVSYNC_PYTHON=3.12.
func (l *Loader) Load(path string) (*domain.Project, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix("ENVSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read project config"), "path", path)
	}

	var dto projectDTO
	if err := v.Unmarshal(&dto); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse project config"), "path", path)
	}

	if len(dto.Envs) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidArgument,
			"project config declares no environments"), "path", path)
	}

	project := &domain.Project{
		Python:         dto.Python,
		Package:        dto.Package,
		Channels:       dto.Channels,
		CondaExternals: dto.CondaExternals,
		Envs:           make(map[string]domain.EnvConfig, len(dto.Envs)),
	}
	for name, env := range dto.Envs {
		project.Envs[name] = domain.EnvConfig{
			Backend:      env.Backend,
			Python:       env.Python,
			Lock:         env.Lock,
			LockFallback: env.LockFallback,
			Requirements: env.Requirements,
			Constraints:  env.Constraints,
			PipDeps:      env.Pip,
			CondaDeps:    env.Conda,
			Channels:     env.Channels,
			Package:      env.Package,
			Extras:       env.Extras,
		}
	}

	l.defaultPackage(project, filepath.Dir(path))
	return project, nil
}

// defaultPackage fills the project package from pyproject.toml when the
// config did not name one and a local package exists.
func (l *Loader) defaultPackage(project *domain.Project, dir string) {
	if project.Package != "" {
		return
	}
	meta, err := LoadPyProject(filepath.Join(dir, "pyproject.toml"))
	if err != nil {
		return
	}
	project.Package = "."
	if meta.Name != "" {
		l.logger.Info("defaulting package to local project " + meta.Name)
	}
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
