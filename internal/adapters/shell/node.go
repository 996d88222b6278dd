package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/adapters/logger"
	"go.trai.ch/envsync/internal/core/ports"
)

// FactoryNodeID is the unique identifier for the session factory Graft node.
const FactoryNodeID graft.ID = "adapter.shell.factory"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(".", log), nil
		},
	})
}
