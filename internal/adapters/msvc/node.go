package msvc

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/proc"
	"go.trai.ch/forge/internal/core/ports"
)

const NodeID graft.ID = "adapter.backend.msvc"

func init() {
	graft.Register(graft.Node[*Backend]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{proc.NodeID},
		Run: func(ctx context.Context) (*Backend, error) {
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackend(runner), nil
		},
	})
}
