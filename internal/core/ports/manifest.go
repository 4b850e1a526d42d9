package ports

import "go.trai.ch/lazy/internal/core/domain"

// ManifestLoader defines the interface for loading the component manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest at path.
	Load(path string) (*domain.Manifest, error)
}
