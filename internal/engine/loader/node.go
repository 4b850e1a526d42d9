package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lazy/internal/adapters/importer"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/lazy/internal/engine/cache"
)

// NodeID is the unique identifier for the load coordinator Graft node.
const NodeID graft.ID = "engine.loader"

func init() {
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cache.NodeID,
			importer.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Loader, error) {
			store, err := graft.Dep[*cache.Store](ctx)
			if err != nil {
				return nil, err
			}

			imp, err := graft.Dep[ports.Importer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return New(store, imp, log, WithTracer(tracer), WithMetrics(m)), nil
		},
	})
}
