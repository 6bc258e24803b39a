// Package imagefile decodes raster image files into luminance grids.
package imagefile

import (
	"image"
	"os"

	// Register the formats the decoder accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.trai.ch/zerr"
	"golang.org/x/image/draw"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
)

// Decoder implements ports.ImageDecoder for PNG, JPEG and GIF files.
type Decoder struct{}

var _ ports.ImageDecoder = (*Decoder)(nil)

func NewDecoder() *Decoder { return &Decoder{} }

// Decode reads and decodes the file, downscales it so neither dimension
// exceeds maxDim, and converts to luminance in [0,1].
func (d *Decoder) Decode(path string, maxDim int) (*domain.Raster, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the user's document
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrAssetNotFound.Error())
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrImageDecodeFailed.Error())
	}

	return Rasterize(img, maxDim), nil
}

// Rasterize converts a decoded image to a luminance raster, downscaling
// with bilinear filtering when it exceeds maxDim.
func Rasterize(img image.Image, maxDim int) *domain.Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if maxDim > 0 && (w > maxDim || h > maxDim) {
		if w >= h {
			h = h * maxDim / w
			w = maxDim
		} else {
			w = w * maxDim / h
			h = maxDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
		bounds = scaled.Bounds()
	}

	r := domain.NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Rec. 601 luma from the 16-bit channel values.
			lum := (0.299*float64(cr) + 0.587*float64(cg) + 0.114*float64(cb)) / 65535
			r.Lum[y*w+x] = lum
		}
	}
	return r
}
