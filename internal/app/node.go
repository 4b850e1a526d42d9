package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lazy/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lazy/internal/adapters/events"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lazy/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/lazy/internal/adapters/viewport" //nolint:depguard // Wired in app layer
	"go.trai.ch/lazy/internal/adapters/watcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/lazy/internal/engine/cache"
	"go.trai.ch/lazy/internal/engine/loader"
	"go.trai.ch/lazy/internal/engine/preload"
	"go.trai.ch/lazy/internal/engine/registry"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components.
// Hosts publish hover and navigation events on Events and report layout on Viewport.
type Components struct {
	App      *App
	Logger   ports.Logger
	Events   *events.Bus
	Viewport *viewport.Tracker
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			config.NodeID,
			cache.NodeID,
			registry.NodeID,
			loader.NodeID,
			preload.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			events.NodeID,
			viewport.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	manifests, err := graft.Dep[ports.ManifestLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*cache.Store](ctx)
	if err != nil {
		return nil, err
	}

	reg, err := graft.Dep[*registry.Registry](ctx)
	if err != nil {
		return nil, err
	}

	l, err := graft.Dep[*loader.Loader](ctx)
	if err != nil {
		return nil, err
	}

	preloader, err := graft.Dep[*preload.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(log, manifests, store, reg, l, preloader, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	bus, err := graft.Dep[*events.Bus](ctx)
	if err != nil {
		return nil, err
	}

	tracker, err := graft.Dep[*viewport.Tracker](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:      a,
		Logger:   log,
		Events:   bus,
		Viewport: tracker,
	}, nil
}
