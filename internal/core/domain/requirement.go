package domain

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// RequirementsDir is the directory holding requirement files, relative to
// the project root. Locked variants live in the "lock" subdirectory.
const RequirementsDir = "requirements"

// PyPrefix converts a python version like "3.11" into the filename prefix
// "py311" used by requirement files.
func PyPrefix(version string) (string, error) {
	if version == "" {
		return "", zerr.Wrap(ErrInvalidArgument, "empty python version")
	}
	return "py" + strings.ReplaceAll(version, ".", ""), nil
}

// ReqQuery describes a requirement file lookup.
type ReqQuery struct {
	// Name is the base environment name, e.g. "dev" or "test".
	Name string
	// Ext is appended when Name does not already carry it, e.g. ".yaml".
	Ext string
	// PythonVersion prepends a py-prefix ("py311-") when set.
	PythonVersion string
	// Lock selects the locked variant under requirements/lock.
	Lock bool
	// CheckExists requires the resolved file to exist on disk.
	CheckExists bool
}

// InferRequirementPath resolves a requirement file name to its path.
//
// "dev" with ext ".yaml" and python "3.11" resolves to
// "requirements/py311-dev.yaml"; with Lock set, conda files map to
// "requirements/lock/py311-dev-conda-lock.yml" while pip ".txt" files keep
// their name under the lock directory.
func InferRequirementPath(q ReqQuery) (string, error) {
	if q.Name == "" {
		return "", zerr.Wrap(ErrInvalidArgument, "must supply requirement name")
	}

	filename := q.Name
	if q.Ext != "" && !strings.HasSuffix(filename, q.Ext) {
		filename += q.Ext
	}
	if q.PythonVersion != "" {
		prefix, err := PyPrefix(q.PythonVersion)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(filename, prefix) {
			filename = prefix + "-" + filename
		}
	}

	dir := RequirementsDir
	if q.Lock {
		switch {
		case strings.HasSuffix(filename, ".yaml"):
			filename = strings.TrimSuffix(filename, ".yaml") + "-conda-lock.yml"
		case strings.HasSuffix(filename, ".yml"):
			filename = strings.TrimSuffix(filename, ".yml") + "-conda-lock.yml"
		case strings.HasSuffix(filename, ".txt"):
			// pip lock files keep their name
		default:
			return "", zerr.With(zerr.Wrap(ErrInvalidArgument, "no locked variant for file"), "filename", filename)
		}
		dir = filepath.Join(RequirementsDir, "lock")
	}

	path := filepath.Join(dir, filename)
	if q.CheckExists {
		if _, err := os.Stat(path); err != nil {
			return "", zerr.With(zerr.Wrap(ErrMissingDependency, "requirement file not found"), "path", path)
		}
	}
	return path, nil
}

// InferRequirementPathWithFallback resolves a requirement path, falling back
// to the unlocked variant when the locked file does not exist. It returns
// the effective lock flag alongside the path.
func InferRequirementPathWithFallback(q ReqQuery) (bool, string, error) {
	if !q.Lock {
		path, err := InferRequirementPath(q)
		return false, path, err
	}

	locked := q
	locked.CheckExists = true
	if path, err := InferRequirementPath(locked); err == nil {
		return true, path, nil
	}

	unlocked := q
	unlocked.Lock = false
	unlocked.CheckExists = true
	path, err := InferRequirementPath(unlocked)
	if err != nil {
		return false, "", err
	}
	return false, path, nil
}
