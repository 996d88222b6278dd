package fs

import (
	"os"

	"go.trai.ch/zerr"
)

// InsideDir runs fn with the process working directory changed to dir,
// restoring the previous directory unconditionally afterward.
func InsideDir(dir string, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return zerr.Wrap(err, "failed to determine working directory")
	}
	if err := os.Chdir(dir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to change directory"), "dir", dir)
	}
	defer os.Chdir(prev) //nolint:errcheck // Restore is best effort

	return fn()
}
