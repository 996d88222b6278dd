package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/envsync/internal/core/ports"
)

// NodeID is the unique identifier for the Telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if os.Getenv("ENVSYNC_PROGRESS") != "" {
				return New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
