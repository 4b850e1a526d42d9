package estimator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lazy/internal/core/ports"
)

// NodeID is the unique identifier for the size estimator Graft node.
const NodeID graft.ID = "adapter.estimator"

func init() {
	graft.Register(graft.Node[ports.SizeEstimator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SizeEstimator, error) {
			return New(), nil
		},
	})
}
