// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/lazy/internal/core/domain"
)

// Importer is the host's "import a named module" primitive.
//
//go:generate go run go.uber.org/mock/mockgen -source=importer.go -destination=mocks/mock_importer.go -package=mocks
type Importer interface {
	// Import resolves path to a module.
	//
	// The context carries the per-attempt timeout. Implementations must observe it and
	// return promptly once it is done.
	Import(ctx context.Context, path string) (domain.Module, error)
}
