package gcc

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.backend.gcc"

func init() {
	graft.Register(graft.Node[*Backend]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Backend, error) {
			return NewBackend(), nil
		},
	})
}
