package importer

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileImporter imports modules from the local filesystem.
type FileImporter struct{}

// NewFileImporter creates a new FileImporter.
func NewFileImporter() *FileImporter {
	return &FileImporter{}
}

// Import reads the file at path and evaluates it according to its extension.
func (f *FileImporter) Import(ctx context.Context, path string) (domain.Module, error) {
	if err := ctx.Err(); err != nil {
		return domain.Module{}, err
	}

	format, ok := formatOf(path)
	if !ok {
		return domain.Module{}, zerr.With(domain.ErrUnsupportedModule, "path", path)
	}

	// #nosec G304 -- module paths come from the registered component configs
	src, err := os.ReadFile(path)
	if err != nil {
		readErr := zerr.Wrap(err, domain.ErrModuleReadFailed.Error())
		if errors.Is(err, fs.ErrNotExist) {
			readErr = zerr.With(readErr, "reason", "not found")
		}
		return domain.Module{}, zerr.With(readErr, "path", path)
	}

	return decode(ctx, format, path, src)
}
