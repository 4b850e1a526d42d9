package app

import (
	"context"

	"go.trai.ch/lazy/internal/core/domain"
)

// Reload exposes reload for testing.
func (a *App) Reload(ctx context.Context, paths []string, watched []domain.ComponentConfig) {
	a.reload(ctx, paths, watched)
}
