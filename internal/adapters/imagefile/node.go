package imagefile

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
)

const NodeID graft.ID = "adapter.imagefile"

func init() {
	graft.Register(graft.Node[ports.ImageDecoder]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ImageDecoder, error) {
			return NewDecoder(), nil
		},
	})
}
