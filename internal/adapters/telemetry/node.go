package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/telemetry/progrock"
	"go.trai.ch/forge/internal/core/ports"
)

const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			// Vertex recording is opt-in; the slog stream is the default surface.
			if os.Getenv("FORGE_PROGRESS") == "1" {
				return progrock.New(), nil
			}
			return NewNoOp(), nil
		},
	})
}
