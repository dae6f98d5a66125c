package markdown

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gendocs/internal/core/ports"
)

// NodeID is the unique identifier for the markdown renderer node.
const NodeID graft.ID = "adapter.renderer"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return New(), nil
		},
	})
}
