// Package importer implements the module import primitive for local files and remote URLs.
package importer

import (
	"context"
	"strings"

	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
)

// Mux routes a module path to the importer for its scheme.
type Mux struct {
	file   ports.Importer
	remote ports.Importer
}

// NewMux creates a Mux sending http(s) URLs to remote and everything else to file.
func NewMux(file, remote ports.Importer) *Mux {
	return &Mux{file: file, remote: remote}
}

// Import implements ports.Importer.
func (m *Mux) Import(ctx context.Context, path string) (domain.Module, error) {
	if isRemote(path) {
		return m.remote.Import(ctx, path)
	}
	return m.file.Import(ctx, strings.TrimPrefix(path, "file://"))
}

func isRemote(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
