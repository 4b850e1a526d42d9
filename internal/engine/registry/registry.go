// Package registry holds component configurations, dependency declarations and route tables.
package registry

import (
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/lazy/internal/core/domain"
)

// Registry maps component names to their configs, dependencies and routes.
// Registration performs no referential-integrity checks: dependencies and route
// entries may name components that are registered later or never.
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	configs map[string]domain.ComponentConfig
	order   []string
	graph   *domain.DependencyGraph
	routes  map[string][]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		configs: make(map[string]domain.ComponentConfig),
		graph:   domain.NewDependencyGraph(),
		routes:  make(map[string][]string),
	}
}

// Register stores cfg under its name with defaults applied, replacing any previous config.
func (r *Registry) Register(cfg domain.ComponentConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.WithDefaults()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.configs[cfg.Name]; !ok {
		r.order = append(r.order, cfg.Name)
	}
	r.configs[cfg.Name] = cfg
	return nil
}

// RegisterDependency replaces the dependency list of name.
func (r *Registry) RegisterDependency(name string, deps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graph.Set(name, slices.Clone(deps))
}

// RegisterRoute replaces the component list of a route path.
func (r *Registry) RegisterRoute(path string, names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = slices.Clone(names)
}

// Get returns the config registered under name.
func (r *Registry) Get(name string) (domain.ComponentConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[name]
	return cfg, ok
}

// Dependencies returns the declared dependencies of name, or nil.
func (r *Registry) Dependencies(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.graph.Dependencies(name)
}

// RouteComponents returns the components rendered by a route path, most critical first.
func (r *Registry) RouteComponents(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.routes[path])
}

// Names returns registered component names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// FindByPath returns the names of components whose import path resolves to path.
func (r *Registry) FindByPath(path string) []string {
	target := filepath.Clean(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, name := range r.order {
		if filepath.Clean(r.configs[name].Path) == target {
			out = append(out, name)
		}
	}
	return out
}

// ValidateDependencies checks the declared dependency graph for cycles.
func (r *Registry) ValidateDependencies() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.graph.Validate()
}

// DependencyOrder returns the transitive dependencies of name followed by name.
func (r *Registry) DependencyOrder(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.graph.Order(name)
}
