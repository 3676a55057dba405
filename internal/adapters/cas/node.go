package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lunaria/internal/core/ports"
)

const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheStoreFactory, error) {
			return func(dir string) ports.CacheStore { return NewStore(dir) }, nil
		},
	})
}
