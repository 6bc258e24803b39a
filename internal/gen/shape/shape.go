// Package shape implements the primitive shape node evaluators. Shapes are
// pure functions of their parameters and ignore upstream input.
package shape

import (
	"math"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"go.trai.ch/zerr"
)

// Line emits a two-point segment from (x1, y1) to (x2, y2).
func Line(p domain.Params) (domain.Path, error) {
	return domain.Path{
		{X: p.Float("x1", 0), Y: p.Float("y1", 0)},
		{X: p.Float("x2", 100), Y: p.Float("y2", 0)},
	}, nil
}

// Rect emits a closed five-point loop for the rectangle at (x, y) with the
// given width and height.
func Rect(p domain.Params) (domain.Path, error) {
	x := p.Float("x", 0)
	y := p.Float("y", 0)
	w := p.Float("width", 100)
	h := p.Float("height", 100)
	if w < 0 || h < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative size"), "field", "width/height")
	}
	return domain.Path{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	}, nil
}

// Circle emits a closed polyline of segments+1 points, every point at
// distance radius from (cx, cy).
func Circle(p domain.Params) (domain.Path, error) {
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)
	r := p.Float("radius", 50)
	segs := p.Int("segments", 64)
	if r < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "radius")
	}
	if segs < 3 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "below 3"), "field", "segments")
	}
	path := make(domain.Path, segs+1)
	for i := 0; i < segs; i++ {
		a := 2 * math.Pi * float64(i) / float64(segs)
		path[i] = domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	// Close on the exact first point; recomputing cos/sin at 2π would
	// leave a rounding gap.
	path[segs] = path[0]
	return path, nil
}

// Ellipse emits a closed polyline with radii (rx, ry) around (cx, cy).
func Ellipse(p domain.Params) (domain.Path, error) {
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)
	rx := p.Float("rx", 60)
	ry := p.Float("ry", 40)
	segs := p.Int("segments", 64)
	if rx < 0 || ry < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "rx/ry")
	}
	if segs < 3 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "below 3"), "field", "segments")
	}
	path := make(domain.Path, segs+1)
	for i := 0; i < segs; i++ {
		a := 2 * math.Pi * float64(i) / float64(segs)
		path[i] = domain.Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	path[segs] = path[0]
	return path, nil
}

// Arc sweeps from startAngle to endAngle in degrees; the sign of the sweep
// picks the direction. Angles are measured clockwise from the positive x
// axis in screen coordinates.
func Arc(p domain.Params) (domain.Path, error) {
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)
	r := p.Float("radius", 50)
	start := p.Float("startAngle", 0)
	end := p.Float("endAngle", 180)
	segs := p.Int("segments", 32)
	if r < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "radius")
	}
	if segs < 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "below 1"), "field", "segments")
	}
	sweep := end - start
	path := make(domain.Path, segs+1)
	for i := 0; i <= segs; i++ {
		a := (start + sweep*float64(i)/float64(segs)) * math.Pi / 180
		path[i] = domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return path, nil
}

// Polygon emits a closed regular polygon with the first vertex pointing
// up (negative y in screen space).
func Polygon(p domain.Params) (domain.Path, error) {
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)
	r := p.Float("radius", 50)
	sides := p.Int("sides", 6)
	if r < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "radius")
	}
	if sides < 3 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "below 3"), "field", "sides")
	}
	path := make(domain.Path, sides+1)
	for i := 0; i < sides; i++ {
		a := 2*math.Pi*float64(i)/float64(sides) - math.Pi/2
		path[i] = domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	path[sides] = path[0]
	return path, nil
}
