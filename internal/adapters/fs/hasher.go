// Package fs provides filesystem adapters: content hashing, scoped
// directory changes and mtime freshness checks.
package fs

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/zerr"
)

// hashBufSize is the fixed read chunk, bounding memory regardless of
// file size.
const hashBufSize = 64 * 1024

var _ ports.FileHasher = (*Hasher)(nil)

// Hasher computes content digests with xxhash64.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile computes the digest of a file's content, reading in fixed-size
// chunks. The digest is the 16-hex-digit xxhash64 of the full byte stream.
func (h *Hasher) HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	buf := make([]byte, hashBufSize)
	if _, err := io.CopyBuffer(hasher, f, buf); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}
