package ports

import "github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"

// ImageDecoder decodes an image file into a luminance raster, downscaling
// so that neither dimension exceeds maxDim.
type ImageDecoder interface {
	Decode(path string, maxDim int) (*domain.Raster, error)
}
