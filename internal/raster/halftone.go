// Package raster implements the image-derived vector converters:
// halftone, ascii and mask. Pixel data arrives pre-decoded from outside
// the engine; these evaluators only resample it.
package raster

import (
	"math"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/xform"
	"go.trai.ch/zerr"
)

// waveform returns the carrier displacement for a phase in radians,
// normalized to [-1, 1].
func waveform(kind string, phase float64) (float64, error) {
	// Normalize phase to [0, 2pi) for the piecewise carriers.
	p := math.Mod(phase, 2*math.Pi)
	if p < 0 {
		p += 2 * math.Pi
	}
	switch kind {
	case "sine":
		return math.Sin(phase), nil
	case "zigzag":
		// Linear ramp up then down.
		if p < math.Pi {
			return -1 + 2*p/math.Pi, nil
		}
		return 3 - 2*p/math.Pi, nil
	case "square":
		if p < math.Pi {
			return 1, nil
		}
		return -1, nil
	case "triangle":
		// Same as zigzag but phase-shifted to start at zero.
		return waveform("zigzag", phase+math.Pi/2)
	default:
		return 0, zerr.With(zerr.Wrap(domain.ErrParameter, "unsupported value"), "waveform", kind)
	}
}

// Halftone samples luminance along parallel scanlines at the configured
// angle and spacing, perturbing a carrier waveform with amplitude
// proportional to local darkness, clamped to [minAmp, maxAmp].
func Halftone(p domain.Params, img *domain.Raster) (domain.PathSet, error) {
	if img == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "no image connected"), "field", "source")
	}
	x := p.Float("x", 0)
	y := p.Float("y", 0)
	w := p.Float("width", 300)
	h := p.Float("height", 300)
	if w <= 0 || h <= 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "must be positive"), "field", "width/height")
	}
	angle := p.Float("angle", 0)
	spacing := p.Float("spacing", 8)
	if spacing <= 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "must be positive"), "field", "spacing")
	}
	kind := p.String("waveform", "sine")
	if _, err := waveform(kind, 0); err != nil {
		return nil, err
	}
	freq := p.Float("frequency", 1)
	minAmp := p.Float("minAmp", 0)
	maxAmp := p.Float("maxAmp", spacing/2)
	invert := p.Bool("invert", false)
	step := p.Float("sampleStep", 2)
	if step <= 0 {
		step = 2
	}

	// Scanlines are generated axis-aligned across a box large enough to
	// cover the region at any angle, then rotated about the region center.
	cx := x + w/2
	cy := y + h/2
	diag := math.Hypot(w, h)
	rot := xform.Rotation(angle, cx, cy)

	var out domain.PathSet
	for ly := cy - diag/2; ly <= cy+diag/2; ly += spacing {
		var path domain.Path
		flush := func() {
			if !path.Degenerate() {
				out = append(out, path)
			}
			path = nil
		}
		for lx := cx - diag/2; lx <= cx+diag/2; lx += step {
			pt := rot.Apply(domain.Point{X: lx, Y: ly})
			if pt.X < x || pt.X > x+w || pt.Y < y || pt.Y > y+h {
				flush()
				continue
			}
			lum := img.Sample((pt.X-x)/w, (pt.Y-y)/h)
			dark := 1 - lum
			if invert {
				dark = lum
			}
			amp := minAmp + dark*(maxAmp-minAmp)
			phase := (lx - (cx - diag/2)) / spacing * freq * 2 * math.Pi
			wv, _ := waveform(kind, phase)
			// Displace perpendicular to the scanline, then rotate with it.
			path = append(path, rot.Apply(domain.Point{X: lx, Y: ly + wv*amp}))
		}
		flush()
	}
	return out, nil
}
