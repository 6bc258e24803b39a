package svgout

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
)

const NodeID graft.ID = "adapter.svgout"

func init() {
	graft.Register(graft.Node[ports.PathWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PathWriter, error) {
			return NewWriter(), nil
		},
	})
}
