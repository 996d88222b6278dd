package fs

import (
	"os"

	"go.trai.ch/envsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// TargetOutdated reports whether target is missing or older than any of
// deps. A missing dependency is an error unless allowMissing is set, in
// which case it is skipped.
func TargetOutdated(target string, deps []string, allowMissing bool) (bool, error) {
	depInfos := make([]os.FileInfo, 0, len(deps))
	for _, dep := range deps {
		info, err := os.Stat(dep)
		if err != nil {
			if allowMissing {
				continue
			}
			return false, zerr.With(zerr.Wrap(domain.ErrMissingDependency, "dependency file not found"), "path", dep)
		}
		depInfos = append(depInfos, info)
	}

	targetInfo, err := os.Stat(target)
	if err != nil {
		return true, nil
	}

	for _, info := range depInfos {
		if targetInfo.ModTime().Before(info.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}
