package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
)

// PyProject is the subset of pyproject.toml envsync cares about.
type PyProject struct {
	// Name is the distribution name from the [project] table.
	Name string
	// Extras are the declared optional-dependency groups.
	Extras []string
}

// LoadPyProject reads project metadata from a pyproject.toml file.
func LoadPyProject(path string) (*PyProject, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is project-local
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read pyproject"), "path", path)
	}

	var raw struct {
		Project struct {
			Name                 string              `toml:"name"`
			OptionalDependencies map[string][]string `toml:"optional-dependencies"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse pyproject"), "path", path)
	}

	meta := &PyProject{Name: raw.Project.Name}
	for extra := range raw.Project.OptionalDependencies {
		meta.Extras = append(meta.Extras, extra)
	}
	return meta, nil
}
