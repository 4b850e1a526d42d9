// Package app implements the application layer for lazy.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/lazy/internal/engine/cache"
	"go.trai.ch/lazy/internal/engine/loader"
	"go.trai.ch/lazy/internal/engine/preload"
	"go.trai.ch/lazy/internal/engine/registry"
	"go.trai.ch/zerr"
)

// App is the service facade owned by the application root. It registers components,
// loads them on demand and forwards preload triggers to the scheduler.
type App struct {
	logger    ports.Logger
	manifests ports.ManifestLoader
	store     *cache.Store
	registry  *registry.Registry
	loader    *loader.Loader
	preloader *preload.Scheduler
	watcher   ports.Watcher

	mu   sync.Mutex
	root string
}

// New creates a new App instance.
func New(
	log ports.Logger,
	manifests ports.ManifestLoader,
	store *cache.Store,
	reg *registry.Registry,
	l *loader.Loader,
	preloader *preload.Scheduler,
	watcher ports.Watcher,
) *App {
	return &App{
		logger:    log,
		manifests: manifests,
		store:     store,
		registry:  reg,
		loader:    l,
		preloader: preloader,
		watcher:   watcher,
	}
}

// LoadComponent returns the component for cfg, importing it on first use.
// Concurrent calls for the same name share one import.
func (a *App) LoadComponent(ctx context.Context, cfg domain.ComponentConfig) (domain.Component, error) {
	return a.loader.Load(ctx, cfg)
}

// PreloadComponent loads cfg when the host is idle. Failures are discarded.
func (a *App) PreloadComponent(cfg domain.ComponentConfig) {
	a.preloader.PreloadComponent(cfg)
}

// ObserveElement preloads cfg once el first intersects the viewport.
func (a *App) ObserveElement(el domain.ElementID, cfg domain.ComponentConfig) {
	a.preloader.ObserveElement(el, cfg)
}

// RegisterComponent adds cfg to the registry.
func (a *App) RegisterComponent(cfg domain.ComponentConfig) error {
	return a.registry.Register(cfg)
}

// RegisterDependency declares the components name needs before it renders.
func (a *App) RegisterDependency(name string, deps []string) {
	a.registry.RegisterDependency(name, deps)
}

// RegisterRoute declares the components rendered by a route, most critical first.
func (a *App) RegisterRoute(path string, names []string) {
	a.registry.RegisterRoute(path, names)
}

// PreloadWithDependencies loads the dependencies of name and then name itself.
// It returns once every load has settled; failures are discarded.
func (a *App) PreloadWithDependencies(ctx context.Context, name string) {
	a.preloader.PreloadWithDependencies(ctx, name)
}

// ClearCache drops every cached component.
func (a *App) ClearCache() {
	a.store.Clear()
}

// CacheStats returns a snapshot of cache usage.
func (a *App) CacheStats() domain.CacheStats {
	return a.store.Stats()
}

// CacheEntries returns the resident components, least recently used first.
func (a *App) CacheEntries() []domain.CacheEntry {
	return a.store.Entries()
}

// Status reports the load state of name and the terminal error of a failed load.
func (a *App) Status(name string) (domain.LoadStatus, error) {
	return a.loader.Status(name)
}

// WaitForPreloads blocks until every triggered preload has settled.
func (a *App) WaitForPreloads() {
	a.preloader.Wait()
}

// Close cancels pending preloads and releases the file watcher.
func (a *App) Close() error {
	a.preloader.Close()
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Stop()
}

// LoadManifest registers every component, dependency and route declared in the
// manifest at path and applies its cache budget.
func (a *App) LoadManifest(path string) error {
	m, err := a.manifests.Load(path)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	for _, cfg := range m.Components {
		if err := a.registry.Register(cfg); err != nil {
			return err
		}
	}
	for name, deps := range m.Dependencies {
		a.registry.RegisterDependency(name, deps)
	}
	for route, names := range m.Routes {
		a.registry.RegisterRoute(route, names)
	}
	a.store.SetMaxSize(m.MaxCacheSize)

	a.mu.Lock()
	a.root = m.Root
	a.mu.Unlock()

	a.logger.Debug(fmt.Sprintf("registered %d components from %s", len(m.Components), path))
	return nil
}

// lookup returns the registered configs for names in order.
func (a *App) lookup(names []string) ([]domain.ComponentConfig, error) {
	if len(names) == 0 {
		return nil, domain.ErrNoComponentsSpecified
	}
	cfgs := make([]domain.ComponentConfig, 0, len(names))
	for _, name := range names {
		cfg, ok := a.registry.Get(name)
		if !ok {
			return nil, zerr.With(domain.ErrComponentNotFound, "component", name)
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

// loadAll loads cfgs one after another and joins their errors.
func (a *App) loadAll(ctx context.Context, cfgs []domain.ComponentConfig) error {
	var errs error
	for _, cfg := range cfgs {
		if _, err := a.loader.Load(ctx, cfg); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if entry, ok := a.store.Peek(cfg.Name); ok {
			a.logger.Info(fmt.Sprintf("loaded %s (size %d, digest %016x)", cfg.Name, entry.Size, entry.Digest))
		}
	}
	return errs
}

// outputConfigurer is implemented by loggers whose format can change at runtime.
type outputConfigurer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureOutput switches the logger to JSON records and debug verbosity when supported.
func (a *App) ConfigureOutput(jsonMode, verbose bool) {
	if oc, ok := a.logger.(outputConfigurer); ok {
		oc.SetJSON(jsonMode)
		oc.SetVerbose(verbose)
	}
}
