package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lunaria/internal/adapters/logger"
	"go.trai.ch/lunaria/internal/core/ports"
)

const NodeID graft.ID = "adapter.command_runner"

// gitEnvironment keeps git output stable and non-interactive.
var gitEnvironment = map[string]string{
	"LC_ALL":              "C",
	"GIT_PAGER":           "cat",
	"GIT_TERMINAL_PROMPT": "0",
}

func init() {
	graft.Register(graft.Node[ports.CommandRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CommandRunner, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(log, gitEnvironment), nil
		},
	})
}
