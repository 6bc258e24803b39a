package graphfile

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/BauhouseConsortium/nirmanaflow/internal/adapters/imagefile"
	"github.com/BauhouseConsortium/nirmanaflow/internal/adapters/logger"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
)

const NodeID graft.ID = "adapter.graphfile"

func init() {
	graft.Register(graft.Node[ports.GraphLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{imagefile.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.GraphLoader, error) {
			decoder, err := graft.Dep[ports.ImageDecoder](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Loader{Decoder: decoder, Logger: log}, nil
		},
	})
}
