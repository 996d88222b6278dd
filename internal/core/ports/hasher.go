package ports

// FileHasher defines the interface for computing content digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type FileHasher interface {
	// HashFile computes the content digest of the file at path.
	HashFile(path string) (string, error)
}
