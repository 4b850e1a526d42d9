package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lazy/internal/adapters/estimator" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/lazy/internal/core/ports"
)

// NodeID is the unique identifier for the cache store Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			estimator.NodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Store, error) {
			est, err := graft.Dep[ports.SizeEstimator](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewStore(est, WithMetrics(m)), nil
		},
	})
}
