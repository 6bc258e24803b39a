package domain

import "math"

// Raster is a decoded grayscale image handed to the engine by an external
// loader. Lum holds row-major luminance values in [0,1]; the engine never
// performs image I/O itself.
type Raster struct {
	Width  int
	Height int
	Lum    []float64
}

// NewRaster allocates a raster of the given size filled with white (1.0).
func NewRaster(width, height int) *Raster {
	lum := make([]float64, width*height)
	for i := range lum {
		lum[i] = 1
	}
	return &Raster{Width: width, Height: height, Lum: lum}
}

// At returns the luminance at pixel (x, y), clamping out-of-range
// coordinates to the edge.
func (r *Raster) At(x, y int) float64 {
	if r.Width == 0 || r.Height == 0 {
		return 1
	}
	if x < 0 {
		x = 0
	} else if x >= r.Width {
		x = r.Width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= r.Height {
		y = r.Height - 1
	}
	return r.Lum[y*r.Width+x]
}

// Sample returns bilinear-interpolated luminance at normalized coordinates
// (u, v) in [0,1]x[0,1].
func (r *Raster) Sample(u, v float64) float64 {
	if r.Width == 0 || r.Height == 0 {
		return 1
	}
	fx := u*float64(r.Width) - 0.5
	fy := v*float64(r.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - math.Floor(fx)
	ty := fy - math.Floor(fy)

	l00 := r.At(x0, y0)
	l10 := r.At(x0+1, y0)
	l01 := r.At(x0, y0+1)
	l11 := r.At(x0+1, y0+1)

	top := l00 + (l10-l00)*tx
	bot := l01 + (l11-l01)*tx
	return top + (bot-top)*ty
}

// Assets carries externally loaded inputs referenced by source parameters:
// decoded images for image-import and the raster converters, and
// pre-parsed path sets for svg-import.
type Assets struct {
	Images map[string]*Raster
	Paths  map[string]PathSet
}

// Image returns the named raster, or nil when absent.
func (a *Assets) Image(name string) *Raster {
	if a == nil {
		return nil
	}
	return a.Images[name]
}

// PathSet returns the named path asset, or nil when absent.
func (a *Assets) PathSet(name string) PathSet {
	if a == nil {
		return nil
	}
	return a.Paths[name]
}
