package app

import (
	"context"
	"fmt"
	"slices"

	"go.trai.ch/lazy/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/zerr"
)

// RunOptions configures the manifest-driven commands.
type RunOptions struct {
	// Manifest is the manifest file or the directory holding components.yaml.
	Manifest string
	// WithDeps also loads the declared dependencies of each named component.
	WithDeps bool
}

// Load registers the manifest and loads the named components, dependencies first
// when requested. It returns the joined terminal errors of every failed load.
func (a *App) Load(ctx context.Context, names []string, opts RunOptions) error {
	if err := a.LoadManifest(opts.Manifest); err != nil {
		return err
	}

	cfgs, err := a.resolve(names, opts.WithDeps)
	if err != nil {
		return err
	}

	err = a.loadAll(ctx, cfgs)
	a.reportStats()
	return err
}

// Preload registers the manifest and preloads the named components through the
// preload scheduler, then reports the status of each. Preload failures are logged,
// never returned.
func (a *App) Preload(ctx context.Context, names []string, opts RunOptions) error {
	if err := a.LoadManifest(opts.Manifest); err != nil {
		return err
	}

	cfgs, err := a.lookup(names)
	if err != nil {
		return err
	}

	for _, cfg := range cfgs {
		if opts.WithDeps {
			a.preloader.PreloadWithDependencies(ctx, cfg.Name)
			continue
		}
		a.preloader.PreloadComponent(cfg)
	}
	a.preloader.Wait()

	for _, cfg := range cfgs {
		status, loadErr := a.loader.Status(cfg.Name)
		switch status {
		case domain.StatusError:
			a.logger.Warn(fmt.Sprintf("%s: %s", cfg.Name, loadErr))
		case domain.StatusNone:
			a.logger.Info(fmt.Sprintf("%s: not loaded", cfg.Name))
		default:
			a.logger.Info(fmt.Sprintf("%s: %s", cfg.Name, status))
		}
	}
	a.reportStats()
	return nil
}

// Watch loads the named components and reloads them whenever their module sources
// change under the manifest root. It blocks until ctx is done.
func (a *App) Watch(ctx context.Context, names []string, opts RunOptions) error {
	if err := a.Load(ctx, names, opts); err != nil {
		a.logger.Error(err)
	}

	a.mu.Lock()
	root := a.root
	a.mu.Unlock()

	if err := a.watcher.Start(ctx, root); err != nil {
		return err
	}
	a.logger.Info("watching " + root)

	watched, err := a.resolve(names, opts.WithDeps)
	if err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.reload(ctx, paths, watched)
	})
	defer debouncer.Stop()

	for event := range a.watcher.Events() {
		debouncer.Add(event.Path)
	}
	return nil
}

// reload evicts every component whose module is among paths and reloads the watched ones.
func (a *App) reload(ctx context.Context, paths []string, watched []domain.ComponentConfig) {
	var stale []string
	for _, path := range paths {
		for _, name := range a.registry.FindByPath(path) {
			a.loader.Invalidate(name)
			stale = append(stale, name)
		}
	}
	if len(stale) == 0 {
		return
	}
	a.logger.Info(fmt.Sprintf("invalidated %v", stale))

	var reload []domain.ComponentConfig
	for _, cfg := range watched {
		if slices.Contains(stale, cfg.Name) {
			reload = append(reload, cfg)
		}
	}
	if err := a.loadAll(ctx, reload); err != nil {
		a.logger.Error(err)
	}
}

// resolve returns the configs for names, each preceded by its registered transitive
// dependencies when withDeps is set. Every config appears once.
func (a *App) resolve(names []string, withDeps bool) ([]domain.ComponentConfig, error) {
	if !withDeps {
		return a.lookup(names)
	}
	if len(names) == 0 {
		return nil, domain.ErrNoComponentsSpecified
	}

	var ordered []string
	for _, name := range names {
		if _, ok := a.registry.Get(name); !ok {
			return nil, zerr.With(domain.ErrComponentNotFound, "component", name)
		}
		order, err := a.registry.DependencyOrder(name)
		if err != nil {
			return nil, err
		}
		for _, dep := range order {
			if slices.Contains(ordered, dep) {
				continue
			}
			if _, ok := a.registry.Get(dep); !ok {
				a.logger.Debug(fmt.Sprintf("skipping unregistered dependency %s", dep))
				continue
			}
			ordered = append(ordered, dep)
		}
	}
	return a.lookup(ordered)
}

func (a *App) reportStats() {
	stats := a.store.Stats()
	a.logger.Info(fmt.Sprintf("cache: %d/%d units in %d entries, %d evicted, hit rate %.0f%%",
		stats.TotalSize, stats.MaxSize, stats.EntryCount, stats.Evictions, stats.HitRate*100))
}
