package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lunaria/internal/app"
	_ "go.trai.ch/lunaria/internal/wiring"
)

// TestGraftComponents ensures that every registered node resolves
// and the application components can be built from the graph.
func TestGraftComponents(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
