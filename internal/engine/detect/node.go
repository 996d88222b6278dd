package detect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/adapters/fs"
	"go.trai.ch/envsync/internal/adapters/logger"
	"go.trai.ch/envsync/internal/core/ports"
)

// NodeID is the unique identifier for the Detector Graft node.
const NodeID graft.ID = "engine.detect"

func init() {
	graft.Register(graft.Node[*Detector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Detector, error) {
			hasher, err := graft.Dep[ports.FileHasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDetector(hasher, log), nil
		},
	})
}
