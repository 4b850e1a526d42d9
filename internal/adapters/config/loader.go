// Package config provides the component manifest loader.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Load reads the manifest at path. If path is a directory, the default manifest name
// inside it is used. Relative component paths resolve against the manifest root.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	manifestPath, err := findManifest(path)
	if err != nil {
		return nil, err
	}

	var dto Manifest
	if err := readAndUnmarshalYAML(manifestPath, &dto); err != nil {
		return nil, zerr.With(err, "path", manifestPath)
	}
	if err := l.validateManifest(&dto); err != nil {
		return nil, zerr.With(err, "path", manifestPath)
	}

	root := resolveRoot(manifestPath, dto.Root)
	m := &domain.Manifest{
		Root:         root,
		MaxCacheSize: dto.Cache.MaxSize,
		Components:   make([]domain.ComponentConfig, 0, len(dto.Components)),
		Dependencies: dto.Dependencies,
		Routes:       dto.Routes,
	}
	if m.MaxCacheSize == 0 {
		m.MaxCacheSize = domain.DefaultMaxCacheSize
	}

	seen := make(map[string]bool, len(dto.Components))
	for i := range dto.Components {
		c := &dto.Components[i]
		if seen[c.Name] {
			return nil, zerr.With(zerr.With(domain.ErrDuplicateComponent, "component", c.Name), "path", manifestPath)
		}
		seen[c.Name] = true

		m.Components = append(m.Components, domain.ComponentConfig{
			Name:             c.Name,
			Path:             resolveModulePath(root, c.Path),
			LoadingComponent: c.LoadingComponent,
			ErrorComponent:   c.ErrorComponent,
			RetryCount:       c.RetryCount,
			Timeout:          time.Duration(c.Timeout),
			Props:            c.Props,
		}.WithDefaults())
	}

	l.checkGraph(m)
	return m, nil
}

// checkGraph warns about dependency cycles and references to undeclared components.
// Neither prevents loading: cyclic edges are skipped at preload time.
func (l *Loader) checkGraph(m *domain.Manifest) {
	g := domain.NewDependencyGraph()
	for name, deps := range m.Dependencies {
		g.Set(name, deps)
	}
	if err := g.Validate(); err != nil {
		msg := err.Error()
		var zErr *zerr.Error
		if errors.As(err, &zErr) {
			if cycle, ok := zErr.Metadata()["cycle"]; ok {
				msg = fmt.Sprintf("%s: %v", domain.ErrCycleDetected.Error(), cycle)
			}
		}
		l.Logger.Warn(msg)
	}

	declared := make(map[string]bool, len(m.Components))
	for _, c := range m.Components {
		declared[c.Name] = true
	}
	for name := range g.Names() {
		for _, dep := range g.Dependencies(name) {
			if !declared[dep] {
				l.Logger.Warn(fmt.Sprintf("component %s depends on undeclared component %s", name, dep))
			}
		}
	}
}

func (l *Loader) validateManifest(dto *Manifest) error {
	err := l.validate.Struct(dto)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return zerr.With(zerr.With(domain.ErrManifestInvalid, "field", fe.Namespace()), "rule", fe.Tag())
	}
	return zerr.Wrap(err, domain.ErrManifestInvalid.Error())
}

func findManifest(path string) (string, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return "", zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}
	if !info.IsDir() {
		return path, nil
	}

	candidate := filepath.Join(path, domain.DefaultManifestName)
	if _, err := os.Stat(candidate); err != nil {
		return "", zerr.With(domain.ErrManifestNotFound, "path", candidate)
	}
	return candidate, nil
}

func resolveRoot(manifestPath, configuredRoot string) string {
	manifestDir := filepath.Dir(manifestPath)
	if configuredRoot == "" {
		return filepath.Clean(manifestDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(manifestDir, configuredRoot))
}

// resolveModulePath joins relative file paths onto root. URLs are kept as written.
func resolveModulePath(root, path string) string {
	if strings.Contains(path, "://") || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is validated by caller
	content, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(content, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrManifestParseFailed.Error())
	}
	return nil
}
