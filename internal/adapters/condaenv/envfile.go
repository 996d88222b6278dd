// Package condaenv implements the default environment provisioner backed
// by the conda/mamba/micromamba CLIs.
package condaenv

import (
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// EnvFile is the parsed form of a conda environment file.
type EnvFile struct {
	// Name is the environment name declared in the file, if any.
	Name string
	// Channels are the declared conda channels.
	Channels []string
	// CondaDeps are the conda package specifiers.
	CondaDeps []string
	// PipDeps are the specifiers under the pip subsection.
	PipDeps []string
}

// ParseEnvFile reads a conda environment YAML file. Dependencies may be
// plain specifiers or a nested "pip:" list.
func ParseEnvFile(path string) (*EnvFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the project config
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read environment file"), "path", path)
	}

	var raw struct {
		Name         string      `yaml:"name"`
		Channels     []string    `yaml:"channels"`
		Dependencies []yaml.Node `yaml:"dependencies"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse environment file"), "path", path)
	}

	env := &EnvFile{Name: raw.Name, Channels: raw.Channels}
	for _, node := range raw.Dependencies {
		switch node.Kind {
		case yaml.ScalarNode:
			var dep string
			if err := node.Decode(&dep); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "invalid dependency entry"), "path", path)
			}
			env.CondaDeps = append(env.CondaDeps, dep)
		case yaml.MappingNode:
			var sub map[string][]string
			if err := node.Decode(&sub); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "invalid dependency subsection"), "path", path)
			}
			env.PipDeps = append(env.PipDeps, sub["pip"]...)
		}
	}
	return env, nil
}
