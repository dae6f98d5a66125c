package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/gendocs/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the concrete walker node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the concrete hasher node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// FileSystemNodeID is the unique identifier for the ports.FileSystem node.
	FileSystemNodeID graft.ID = "adapter.fs.filesystem"
	// HasherPortNodeID is the unique identifier for the ports.Hasher node.
	HasherPortNodeID graft.ID = "adapter.fs.hasher_port"
	// PublisherNodeID is the unique identifier for the ports.Publisher node.
	PublisherNodeID graft.ID = "adapter.fs.publisher"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.FileSystem]{
		ID:        FileSystemNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.FileSystem, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return walker, nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherPortNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.Hasher, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return hasher, nil
		},
	})

	graft.Register(graft.Node[ports.Publisher]{
		ID:        PublisherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID, WalkerNodeID},
		Run: func(ctx context.Context) (ports.Publisher, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewPublisher(hasher, walker), nil
		},
	})
}
