package raster

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"go.trai.ch/zerr"
)

// Mask filters the input paths against a mask. The mask is either an
// image (luminance sampled over the configured region) or the polygons
// arriving on the mask port. Points where the mask reads bright are
// kept and dark regions erase; invert flips that. With dropWhole each
// path is kept or dropped as a unit based on its mean luminance,
// otherwise paths are split at the mask boundary.
func Mask(p domain.Params, in domain.PathSet, img *domain.Raster, maskPaths domain.PathSet) (domain.PathSet, error) {
	threshold := p.Float("threshold", 0.5)
	if threshold < 0 || threshold > 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "must be in [0,1]"), "field", "threshold")
	}
	invert := p.Bool("invert", false)
	feather := p.Float("feather", 0)
	if feather < 0 {
		feather = 0
	}
	dropWhole := p.Bool("dropWhole", false)

	var lum func(domain.Point) float64
	switch {
	case img != nil:
		x := p.Float("x", 0)
		y := p.Float("y", 0)
		w := p.Float("width", 300)
		h := p.Float("height", 300)
		if w <= 0 || h <= 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "must be positive"), "field", "width/height")
		}
		lum = func(pt domain.Point) float64 {
			if pt.X < x || pt.X > x+w || pt.Y < y || pt.Y > y+h {
				return 1 // outside the region reads white
			}
			return img.Sample((pt.X-x)/w, (pt.Y-y)/h)
		}
	case len(maskPaths) > 0:
		// Polygon mask: inside reads black, outside white.
		lum = func(pt domain.Point) float64 {
			if insideAny(maskPaths, pt) {
				return 0
			}
			return 1
		}
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "no mask image or paths connected"), "field", "mask")
	}

	pass := func(l float64, pt domain.Point) bool {
		t := threshold
		if feather > 0 {
			// Deterministic jitter widens the threshold into a band so the
			// cut edge dithers instead of stair-stepping.
			t += (jitter(pt) - 0.5) * feather
		}
		k := l > t
		if invert {
			k = !k
		}
		return k
	}
	keep := func(pt domain.Point) bool {
		return pass(lum(pt), pt)
	}

	var out domain.PathSet
	for _, path := range in {
		if dropWhole {
			if len(path) == 0 {
				continue
			}
			var sum float64
			for _, pt := range path {
				sum += lum(pt)
			}
			if pass(sum/float64(len(path)), path[0]) {
				out = append(out, path)
			}
			continue
		}
		var seg domain.Path
		for _, pt := range path {
			if keep(pt) {
				seg = append(seg, pt)
				continue
			}
			if !seg.Degenerate() {
				out = append(out, seg)
			}
			seg = nil
		}
		if !seg.Degenerate() {
			out = append(out, seg)
		}
	}
	return out, nil
}

// jitter hashes the point coordinates to a stable pseudo-random value in
// [0,1). Identical inputs always dither identically.
func jitter(pt domain.Point) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], math.Float64bits(pt.X))
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(pt.Y))
	return float64(xxhash.Sum64(buf[:])%1_000_000) / 1_000_000
}

// insideAny tests the point against each mask polygon with the even-odd
// ray crossing rule.
func insideAny(polys domain.PathSet, pt domain.Point) bool {
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		inside := false
		j := len(poly) - 1
		for i := 0; i < len(poly); i++ {
			a, b := poly[i], poly[j]
			if (a.Y > pt.Y) != (b.Y > pt.Y) &&
				pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
				inside = !inside
			}
			j = i
		}
		if inside {
			return true
		}
	}
	return false
}
