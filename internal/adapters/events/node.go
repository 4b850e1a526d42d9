package events

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the event bus Graft node.
const NodeID graft.ID = "adapter.events"

func init() {
	graft.Register(graft.Node[*Bus]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Bus, error) {
			return New(), nil
		},
	})
}
