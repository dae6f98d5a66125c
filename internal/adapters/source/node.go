package source

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gendocs/internal/adapters/golang"
	"go.trai.ch/gendocs/internal/adapters/python"
	"go.trai.ch/gendocs/internal/core/ports"
)

// NodeID is the unique identifier for the source extractor node.
const NodeID graft.ID = "adapter.source"

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Extractor, error) {
			return NewRegistry(python.New(), golang.New()), nil
		},
	})
}
