// Package layout implements the path-layout node: distributing upstream
// elements along a parametric carrier curve.
package layout

import (
	"math"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/xform"
	"go.trai.ch/zerr"
)

// carrier maps a parameter u in [0,1] to a position and a tangent angle in
// degrees (screen-space clockwise).
type carrier func(u float64) (domain.Point, float64)

func makeCarrier(p domain.Params) (carrier, error) {
	kind := p.String("curve", "line")
	switch kind {
	case "line":
		x1 := p.Float("x1", 0)
		y1 := p.Float("y1", 0)
		x2 := p.Float("x2", 200)
		y2 := p.Float("y2", 0)
		ang := math.Atan2(y2-y1, x2-x1) * 180 / math.Pi
		return func(u float64) (domain.Point, float64) {
			return domain.Point{X: x1 + (x2-x1)*u, Y: y1 + (y2-y1)*u}, ang
		}, nil
	case "circle":
		cx := p.Float("cx", 0)
		cy := p.Float("cy", 0)
		r := p.Float("radius", 100)
		return func(u float64) (domain.Point, float64) {
			a := u * 2 * math.Pi
			return domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)},
				a*180/math.Pi + 90
		}, nil
	case "arc":
		cx := p.Float("cx", 0)
		cy := p.Float("cy", 0)
		r := p.Float("radius", 100)
		start := p.Float("startAngle", 0)
		end := p.Float("endAngle", 180)
		return func(u float64) (domain.Point, float64) {
			deg := start + (end-start)*u
			a := deg * math.Pi / 180
			tangent := deg + 90
			if end < start {
				tangent = deg - 90
			}
			return domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}, tangent
		}, nil
	case "wave":
		x := p.Float("x", 0)
		y := p.Float("y", 0)
		length := p.Float("length", 300)
		amp := p.Float("amplitude", 40)
		periods := p.Float("periods", 3)
		return func(u float64) (domain.Point, float64) {
			phase := u * periods * 2 * math.Pi
			// Tangent from the analytic derivative of the sine.
			slope := amp * math.Cos(phase) * periods * 2 * math.Pi / length
			return domain.Point{X: x + length*u, Y: y + amp*math.Sin(phase)},
				math.Atan2(slope, 1) * 180 / math.Pi
		}, nil
	case "spiral":
		cx := p.Float("cx", 0)
		cy := p.Float("cy", 0)
		turns := p.Float("turns", 3)
		inner := p.Float("innerRadius", 10)
		outer := p.Float("outerRadius", 120)
		return func(u float64) (domain.Point, float64) {
			a := u * turns * 2 * math.Pi
			r := inner + (outer-inner)*u
			return domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)},
				a*180/math.Pi + 90
		}, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "unsupported value"), "curve", kind)
	}
}

// Eval distributes the upstream paths along the carrier. Each input path
// is one element, moved by its bounding-box center to its station; with
// orient set it is additionally rotated to the carrier tangent. With no
// input the carrier itself is emitted as a sampled polyline.
func Eval(p domain.Params, in domain.PathSet) (domain.PathSet, error) {
	c, err := makeCarrier(p)
	if err != nil {
		return nil, err
	}
	if len(in) == 0 {
		return domain.PathSet{sample(c, p.Int("segments", 64))}, nil
	}

	align := p.String("align", "start")
	spacing := p.Float("spacing", 1)
	reverse := p.Bool("reverse", false)
	orient := p.Bool("orient", true)

	// Stations cover a [0, spacing] slice of the carrier parameter before
	// alignment shifts them.
	n := len(in)
	gap, span := 0.0, 0.0
	if n > 1 {
		gap = spacing / float64(n-1)
		span = spacing
	}
	offset := 0.0
	switch align {
	case "start":
	case "center":
		offset = (1 - span) / 2
	case "end":
		offset = 1 - span
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "unsupported value"), "align", align)
	}

	out := make(domain.PathSet, 0, n)
	for k, path := range in {
		u := offset + gap*float64(k)
		if reverse {
			u = 1 - u
		}
		u = clamp01(u)
		pos, tangent := c(u)
		center := domain.PathSet{path}.Center()
		tf := xform.Translation(pos.X-center.X, pos.Y-center.Y)
		if orient {
			tf = xform.Rotation(tangent, pos.X, pos.Y).Mul(tf)
		}
		out = append(out, tf.ApplyPath(path))
	}
	return out, nil
}

func sample(c carrier, segments int) domain.Path {
	if segments < 1 {
		segments = 1
	}
	path := make(domain.Path, segments+1)
	for i := 0; i <= segments; i++ {
		pt, _ := c(float64(i) / float64(segments))
		path[i] = pt
	}
	return path
}

func clamp01(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}
