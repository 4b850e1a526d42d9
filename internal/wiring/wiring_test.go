package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lazy/internal/app"
	_ "go.trai.ch/lazy/internal/wiring"
)

// TestGraphResolves verifies that every registered node can be constructed.
func TestGraphResolves(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
	require.NotNil(t, components.Events)
	require.NotNil(t, components.Viewport)
	t.Cleanup(func() { _ = components.App.Close() })

	stats := components.App.CacheStats()
	require.Equal(t, 50, stats.MaxSize)
}
