// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lazy/internal/adapters/config"
	_ "go.trai.ch/lazy/internal/adapters/estimator"
	_ "go.trai.ch/lazy/internal/adapters/events"
	_ "go.trai.ch/lazy/internal/adapters/importer"
	_ "go.trai.ch/lazy/internal/adapters/logger"
	_ "go.trai.ch/lazy/internal/adapters/metrics"
	_ "go.trai.ch/lazy/internal/adapters/telemetry"
	_ "go.trai.ch/lazy/internal/adapters/viewport"
	_ "go.trai.ch/lazy/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/lazy/internal/app"
	_ "go.trai.ch/lazy/internal/engine/cache"
	_ "go.trai.ch/lazy/internal/engine/loader"
	_ "go.trai.ch/lazy/internal/engine/preload"
	_ "go.trai.ch/lazy/internal/engine/registry"
)
