package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/BauhouseConsortium/nirmanaflow/internal/adapters/graphfile" //nolint:depguard // Wired in app layer
	"github.com/BauhouseConsortium/nirmanaflow/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/BauhouseConsortium/nirmanaflow/internal/adapters/svgout"    //nolint:depguard // Wired in app layer
	"github.com/BauhouseConsortium/nirmanaflow/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
	"github.com/BauhouseConsortium/nirmanaflow/internal/script"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			graphfile.NodeID,
			svgout.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.GraphLoader](ctx)
			if err != nil {
				return nil, err
			}

			writer, err := graft.Dep[ports.PathWriter](ctx)
			if err != nil {
				return nil, err
			}

			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, writer, w, log, script.NewRunner()), nil
		},
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    a,
		Logger: log,
	}, nil
}
