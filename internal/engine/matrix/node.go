package matrix

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/adapters/fs"
	"go.trai.ch/forge/internal/adapters/gcc"
	"go.trai.ch/forge/internal/adapters/logger"
	"go.trai.ch/forge/internal/adapters/msvc"
	"go.trai.ch/forge/internal/adapters/proc"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the unique identifier for the matrix executor Graft node.
const NodeID graft.ID = "engine.matrix"

func init() {
	graft.Register(graft.Node[*Executor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			msvc.NodeID,
			gcc.NodeID,
			proc.NodeID,
			fs.CopierNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Executor, error) {
			msvcBackend, err := graft.Dep[*msvc.Backend](ctx)
			if err != nil {
				return nil, err
			}

			gccBackend, err := graft.Dep[*gcc.Backend](ctx)
			if err != nil {
				return nil, err
			}

			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}

			copier, err := graft.Dep[ports.TreeCopier](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewExecutor(
				[]ports.ToolchainBackend{msvcBackend, gccBackend},
				runner,
				copier,
				log,
				tel,
				domain.NewEnvSnapshot(os.Environ()),
			), nil
		},
	})
}
