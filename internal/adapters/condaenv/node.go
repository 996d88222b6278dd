package condaenv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/core/ports"
	"go.trai.ch/envsync/internal/engine/detect"
)

// NodeID is the unique identifier for the Provisioner Graft node.
const NodeID graft.ID = "adapter.condaenv"

func init() {
	graft.Register(graft.Node[ports.Provisioner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{detect.NodeID},
		Run: func(ctx context.Context) (ports.Provisioner, error) {
			detector, err := graft.Dep[*detect.Detector](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvisioner(detector), nil
		},
	})
}
