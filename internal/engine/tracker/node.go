package tracker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lunaria/internal/adapters/git"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lunaria/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lunaria/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lunaria/internal/core/ports"
)

// NodeID is the unique identifier for the tracker Graft node.
const NodeID graft.ID = "engine.tracker"

func init() {
	graft.Register(graft.Node[*Tracker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			git.NodeID,
			progrock.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Tracker, error) {
			walker, err := graft.Dep[ports.HistoryWalker](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(walker, telemetry, log), nil
		},
	})
}
