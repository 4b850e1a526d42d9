package importer

import (
	"context"
	"net/http"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/lazy/internal/core/ports"
)

// NodeID is the unique identifier for the importer Graft node.
const NodeID graft.ID = "adapter.importer"

// httpClientTimeout is a backstop; attempts are normally bounded by their own timeout.
const httpClientTimeout = 2 * time.Minute

func init() {
	graft.Register(graft.Node[ports.Importer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Importer, error) {
			return NewMux(
				NewFileImporter(),
				NewHTTPImporter(&http.Client{Timeout: httpClientTimeout}),
			), nil
		},
	})
}
