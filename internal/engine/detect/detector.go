// Package detect implements the change detector: it digests a set of
// dependency files, compares them against a persisted hash store, and
// persists the updated store in lock-step with the caller's work.
package detect

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// HashSuffix is appended to a target path to derive its hash store.
const HashSuffix = ".hash.json"

// Outcome is the result of a change check.
type Outcome struct {
	// Changed reports whether any dependency changed since the last
	// successful run.
	Changed bool
	// Hashes is the record to persist on the commit path: previous
	// entries overlaid with the freshly computed ones.
	Hashes map[string]string
	// HashPath is the resolved hash store location.
	HashPath string
}

// Options configure a scoped change detection run.
type Options struct {
	// Deps are the dependency files to track. All must exist.
	Deps []string
	// TargetPath is the artifact whose absence forces a change.
	TargetPath string
	// HashPath is the hash store location. Defaults to TargetPath with
	// HashSuffix appended; when only HashPath is given it doubles as the
	// target.
	HashPath string
	// ForceWrite persists the store even when nothing changed.
	ForceWrite bool
}

// Detector computes and compares dependency digests.
type Detector struct {
	hasher ports.FileHasher
	logger ports.Logger
}

// NewDetector creates a new Detector.
func NewDetector(hasher ports.FileHasher, logger ports.Logger) *Detector {
	return &Detector{hasher: hasher, logger: logger}
}

// ComputeHashes digests each dependency file. Keys are paths relative to
// relTo so the store stays relocatable alongside the files it tracks.
func (d *Detector) ComputeHashes(deps []string, relTo string) (map[string]string, error) {
	hashes := make(map[string]string, len(deps))
	for _, dep := range deps {
		info, err := os.Stat(dep)
		if err != nil || info.IsDir() {
			return nil, zerr.With(zerr.Wrap(domain.ErrMissingDependency, "dependency file not found"), "path", dep)
		}

		digest, err := d.hasher.HashFile(dep)
		if err != nil {
			return nil, err
		}

		key := dep
		if rel, relErr := filepath.Rel(relTo, dep); relErr == nil {
			key = rel
		}
		hashes[key] = digest
	}
	return hashes, nil
}

// Check compares the dependencies against the persisted hash store.
//
// Decision policy, in order: a missing target forces a change; an existing
// store is loaded and any absent or differing digest marks a change; a
// missing store forces a change. When a store exists the returned record
// is the stored entries overlaid with every fresh digest, so entries for
// dependencies outside deps are preserved.
func (d *Detector) Check(deps []string, targetPath, hashPath string) (Outcome, error) {
	switch {
	case targetPath == "" && hashPath == "":
		return Outcome{}, zerr.Wrap(domain.ErrInvalidArgument,
			"must specify target path or hash path")
	case targetPath == "":
		targetPath = hashPath
	case hashPath == "":
		hashPath = targetPath + HashSuffix
	}

	hashes, err := d.ComputeHashes(deps, filepath.Dir(hashPath))
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{Hashes: hashes, HashPath: hashPath}

	if !isFile(targetPath) {
		out.Changed = true
		return out, nil
	}

	if !isFile(hashPath) {
		out.Changed = true
		return out, nil
	}

	previous, err := readStore(hashPath)
	if err != nil {
		return Outcome{}, err
	}

	merged := maps.Clone(previous)
	for key, digest := range hashes {
		if prev, ok := previous[key]; !ok || prev != digest {
			out.Changed = true
		}
		merged[key] = digest
	}
	out.Hashes = merged
	return out, nil
}

// WithChangeDetection runs fn with the changed flag from Check. On normal
// return of fn the hash store is persisted when something changed or
// ForceWrite is set; when fn fails the error propagates and nothing is
// written, so a partial failure can never look unchanged on the next run.
func (d *Detector) WithChangeDetection(opts Options, fn func(changed bool) error) (bool, error) {
	out, err := d.Check(opts.Deps, opts.TargetPath, opts.HashPath)
	if err != nil {
		return false, err
	}

	if err := fn(out.Changed); err != nil {
		return out.Changed, err
	}

	if out.Changed || opts.ForceWrite {
		d.logger.Info(fmt.Sprintf("writing hash store %s", out.HashPath))
		if err := os.MkdirAll(filepath.Dir(out.HashPath), 0o750); err != nil {
			return out.Changed, zerr.Wrap(err, "failed to create hash store directory")
		}
		if err := WriteHashes(out.HashPath, out.Hashes); err != nil {
			return out.Changed, err
		}
	}
	return out.Changed, nil
}

// WriteHashes serializes the record to hashPath, pretty-printed with a
// trailing newline, overwriting any previous store. The write is not
// atomic; a crash mid-write corrupts the store, which Check surfaces as
// ErrStoreCorrupt.
func WriteHashes(hashPath string, hashes map[string]string) error {
	data, err := json.MarshalIndent(hashes, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal hash store")
	}
	data = append(data, '\n')

	//nolint:gosec // Store is project-local state
	if err := os.WriteFile(hashPath, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write hash store"), "path", hashPath)
	}
	return nil
}

func readStore(hashPath string) (map[string]string, error) {
	data, err := os.ReadFile(hashPath) //nolint:gosec // Store is project-local state
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read hash store"), "path", hashPath)
	}

	var previous map[string]string
	if err := json.Unmarshal(data, &previous); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreCorrupt, err.Error()), "path", hashPath)
	}
	if previous == nil {
		previous = map[string]string{}
	}
	return previous, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
