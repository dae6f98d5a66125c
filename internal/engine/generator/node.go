package generator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gendocs/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gendocs/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gendocs/internal/adapters/markdown"           //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gendocs/internal/adapters/source"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gendocs/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/gendocs/internal/core/ports"
)

// NodeID is the unique identifier for the generator Graft node.
const NodeID graft.ID = "engine.generator"

func init() {
	graft.Register(graft.Node[*Generator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			source.NodeID,
			markdown.NodeID,
			fs.FileSystemNodeID,
			logger.PortNodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Generator, error) {
			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}

			renderer, err := graft.Dep[ports.Renderer](ctx)
			if err != nil {
				return nil, err
			}

			fsys, err := graft.Dep[ports.FileSystem](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(extractor, renderer, fsys, log, telemetry), nil
		},
	})
}
