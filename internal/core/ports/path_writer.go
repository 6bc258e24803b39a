package ports

import (
	"io"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

// PathWriter renders an evaluated path set to an output stream. Colors
// carries the per-path color-well tag (0 = untagged), parallel to paths.
type PathWriter interface {
	Write(w io.Writer, paths domain.PathSet, colors []int, width, height int) error
}
