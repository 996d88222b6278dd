package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/core/ports"
)

// HasherNodeID is the unique identifier for the FileHasher Graft node.
const HasherNodeID graft.ID = "adapter.fs.hasher"

func init() {
	graft.Register(graft.Node[ports.FileHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileHasher, error) {
			return NewHasher(), nil
		},
	})
}
