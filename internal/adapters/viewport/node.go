package viewport

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lazy/internal/core/domain"
)

// NodeID is the unique identifier for the viewport tracker Graft node.
const NodeID graft.ID = "adapter.viewport"

func init() {
	graft.Register(graft.Node[*Tracker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Tracker, error) {
			return New(domain.DefaultObserverOptions()), nil
		},
	})
}
