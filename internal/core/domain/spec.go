package domain

import (
	"encoding/json"
	"os"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// EnvSpec is the explicit installer configuration for one environment.
// Every optional field is enumerated here so the fingerprint serialization
// is deterministic; there is no dynamic option merging.
type EnvSpec struct {
	// Name is the environment name as declared in the project config.
	Name string
	// Backend owns the environment (pip or a conda flavor).
	Backend Backend
	// Python is the interpreter version, e.g. "3.11".
	Python string
	// Lock selects locked requirement files (pip-tools / conda-lock).
	Lock bool

	// Package is the local package to install editable, "" to skip.
	Package string
	// PackageExtras are the extras appended to Package, e.g. "dev".
	PackageExtras []string

	// PipDeps are ad-hoc pip requirement specifiers.
	PipDeps []string
	// Requirements are pip requirement files (-r).
	Requirements []string
	// Constraints are pip constraint files (-c).
	Constraints []string

	// CondaDeps are ad-hoc conda package specifiers.
	CondaDeps []string
	// Channels are the conda channels used for ad-hoc installs.
	Channels []string
	// CondaEnvFile is the conda environment (or conda-lock) file.
	CondaEnvFile string
	// CondaExternals lists external commands the session may run.
	CondaExternals []string

	// FingerprintPath is where the environment fingerprint is persisted.
	FingerprintPath string
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// NewEnvSpec canonicalizes and validates a spec. Dependency lists are
// whitespace-stripped, sorted and deduplicated; referenced files must
// exist; incompatible option combinations are rejected.
func NewEnvSpec(spec EnvSpec) (*EnvSpec, error) {
	spec.PackageExtras = canonicalize(spec.PackageExtras)
	spec.PipDeps = canonicalize(spec.PipDeps)
	spec.CondaDeps = canonicalize(spec.CondaDeps)
	spec.Channels = canonicalize(spec.Channels)
	slices.Sort(spec.Requirements)
	slices.Sort(spec.Constraints)
	if len(spec.CondaExternals) == 0 {
		spec.CondaExternals = DefaultCondaExternals()
	}

	if !spec.Backend.IsConda() {
		if len(spec.CondaDeps) > 0 || len(spec.Channels) > 0 || spec.CondaEnvFile != "" {
			return nil, zerr.With(zerr.Wrap(ErrInvalidArgument,
				"conda options on a non-conda backend"), "env", spec.Name)
		}
	}

	if spec.Lock {
		if spec.Backend.IsConda() {
			if spec.CondaEnvFile == "" {
				return nil, zerr.With(zerr.Wrap(ErrInvalidArgument,
					"locked conda environment requires a conda-lock file"), "env", spec.Name)
			}
			if len(spec.CondaDeps) > 0 || len(spec.Channels) > 0 ||
				len(spec.PipDeps) > 0 || len(spec.Requirements) > 0 || len(spec.Constraints) > 0 {
				return nil, zerr.With(zerr.Wrap(ErrInvalidArgument,
					"conda-lock excludes other dependency options"), "env", spec.Name)
			}
		} else {
			if len(spec.Requirements) == 0 || len(spec.PipDeps) > 0 || len(spec.Constraints) > 0 {
				return nil, zerr.With(zerr.Wrap(ErrInvalidArgument,
					"locked virtualenv takes requirement files only"), "env", spec.Name)
			}
		}
	}

	for _, path := range spec.trackedFiles() {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			missing := zerr.With(zerr.Wrap(ErrMissingDependency, "tracked file not found"), "path", path)
			return nil, zerr.With(missing, "env", spec.Name)
		}
	}

	return &spec, nil
}

// trackedFiles returns every file whose content participates in the
// fingerprint, and therefore must exist.
func (s *EnvSpec) trackedFiles() []string {
	files := make([]string, 0, len(s.Requirements)+len(s.Constraints)+1)
	files = append(files, s.Requirements...)
	files = append(files, s.Constraints...)
	if s.CondaEnvFile != "" {
		files = append(files, s.CondaEnvFile)
	}
	return files
}

// fingerprint is the serialized form of an EnvSpec. Option fields are kept
// verbatim; file fields map path to content digest. JSON object keys and
// the canonicalized slices keep the output stable across runs.
type fingerprint struct {
	Backend       Backend           `json:"backend"`
	Python        string            `json:"python"`
	Lock          bool              `json:"lock"`
	Package       string            `json:"package"`
	PackageExtras []string          `json:"package_extras"`
	PipDeps       []string          `json:"pip_deps"`
	CondaDeps     []string          `json:"conda_deps"`
	Channels      []string          `json:"channels"`
	Requirements  map[string]string `json:"requirements"`
	Constraints   map[string]string `json:"constraints"`
	CondaEnvFile  map[string]string `json:"conda_env_file"`
}

// Fingerprint serializes the spec together with the digests of every
// tracked file. Two fingerprints are equal iff nothing relevant to the
// installed environment changed.
func (s *EnvSpec) Fingerprint(hash func(path string) (string, error)) ([]byte, error) {
	fp := fingerprint{
		Backend:       s.Backend,
		Python:        s.Python,
		Lock:          s.Lock,
		Package:       s.Package,
		PackageExtras: s.PackageExtras,
		PipDeps:       s.PipDeps,
		CondaDeps:     s.CondaDeps,
		Channels:      s.Channels,
		Requirements:  map[string]string{},
		Constraints:   map[string]string{},
		CondaEnvFile:  map[string]string{},
	}

	digests := func(paths []string, into map[string]string) error {
		for _, path := range paths {
			d, err := hash(path)
			if err != nil {
				return err
			}
			into[path] = d
		}
		return nil
	}

	if err := digests(s.Requirements, fp.Requirements); err != nil {
		return nil, err
	}
	if err := digests(s.Constraints, fp.Constraints); err != nil {
		return nil, err
	}
	if s.CondaEnvFile != "" {
		if err := digests([]string{s.CondaEnvFile}, fp.CondaEnvFile); err != nil {
			return nil, err
		}
	}

	data, err := json.MarshalIndent(fp, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to marshal fingerprint")
	}
	return append(data, '\n'), nil
}

// FingerprintsEqual compares a stored fingerprint against a current one.
// A missing or empty stored fingerprint never matches.
func FingerprintsEqual(previous, current []byte) bool {
	if len(previous) == 0 {
		return false
	}
	return string(previous) == string(current)
}

// PackageSpec renders the package with its extras, e.g. ".[dev,test]".
func (s *EnvSpec) PackageSpec() string {
	if s.Package == "" || len(s.PackageExtras) == 0 {
		return s.Package
	}
	return s.Package + "[" + strings.Join(s.PackageExtras, ",") + "]"
}

func canonicalize(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = whitespaceRE.ReplaceAllString(item, "")
		if item != "" {
			out = append(out, item)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
