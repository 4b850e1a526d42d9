package preload

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lazy/internal/adapters/events"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/idle"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/metrics"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/viewport" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/core/ports"
	"go.trai.ch/lazy/internal/engine/loader"
	"go.trai.ch/lazy/internal/engine/registry"
)

// NodeID is the unique identifier for the preload scheduler Graft node.
const NodeID graft.ID = "engine.preload"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			loader.NodeID,
			registry.NodeID,
			logger.NodeID,
			metrics.NodeID,
			viewport.NodeID,
			events.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			l, err := graft.Dep[*loader.Loader](ctx)
			if err != nil {
				return nil, err
			}

			r, err := graft.Dep[*registry.Registry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			tracker, err := graft.Dep[*viewport.Tracker](ctx)
			if err != nil {
				return nil, err
			}

			bus, err := graft.Dep[*events.Bus](ctx)
			if err != nil {
				return nil, err
			}

			// Idle means no import is in flight.
			idleScheduler := idle.New(func() bool { return l.InFlightCount() > 0 })

			return New(l, r, log,
				WithIdleScheduler(idleScheduler),
				WithViewportObserver(tracker),
				WithHoverSource(bus),
				WithRouteSource(bus),
				WithMetrics(m),
			), nil
		},
	})
}
