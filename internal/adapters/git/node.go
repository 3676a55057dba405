package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lunaria/internal/adapters/shell"
	"go.trai.ch/lunaria/internal/core/ports"
)

// NodeID is the unique identifier for the history walker Graft node.
const NodeID graft.ID = "adapter.history_walker"

func init() {
	graft.Register(graft.Node[ports.HistoryWalker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.HistoryWalker, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewWalker(runner, 0), nil
		},
	})
}
