// Package iterate implements the fan-out node evaluators: repeat, grid and
// radial. Each takes the single upstream path set and emits placed copies,
// preserving input path order within every instance.
package iterate

import (
	"math"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/xform"
	"go.trai.ch/zerr"
)

// Repeat emits count instances of the input; instance k is the input
// transformed by the step transform raised to the k-th power, where the
// step is scale, then rotate, then translate.
func Repeat(p domain.Params, in domain.PathSet) (domain.PathSet, error) {
	count := p.Int("count", 1)
	if count < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "count")
	}
	dx := p.Float("dx", 0)
	dy := p.Float("dy", 0)
	rotation := p.Float("rotation", 0)
	scale := p.Float("scale", 1)
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)

	step := xform.Translation(dx, dy).
		Mul(xform.Rotation(rotation, cx, cy)).
		Mul(xform.Scaling(scale, scale, cx, cy))

	out := make(domain.PathSet, 0, count*len(in))
	acc := xform.Identity()
	for k := 0; k < count; k++ {
		out = append(out, acc.ApplySet(in)...)
		acc = step.Mul(acc)
	}
	return out, nil
}

// Grid places the input at cols x rows lattice positions, row-major,
// starting at (startX, startY) with the given spacing.
func Grid(p domain.Params, in domain.PathSet) (domain.PathSet, error) {
	cols := p.Int("cols", 3)
	rows := p.Int("rows", 3)
	if cols < 0 || rows < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "cols/rows")
	}
	startX := p.Float("startX", 0)
	startY := p.Float("startY", 0)
	spacingX := p.Float("spacingX", 50)
	spacingY := p.Float("spacingY", 50)

	out := make(domain.PathSet, 0, cols*rows*len(in))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			t := xform.Translation(
				startX+float64(col)*spacingX,
				startY+float64(row)*spacingY,
			)
			out = append(out, t.ApplySet(in)...)
		}
	}
	return out, nil
}

// Radial places count copies evenly around a circle of the given radius
// and center. With faceOut set each copy is additionally rotated to face
// outward from its placement angle, measured from startAngle.
func Radial(p domain.Params, in domain.PathSet) (domain.PathSet, error) {
	count := p.Int("count", 6)
	if count < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "negative"), "field", "count")
	}
	radius := p.Float("radius", 100)
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)
	startAngle := p.Float("startAngle", 0)
	faceOut := p.Bool("faceOut", true)

	out := make(domain.PathSet, 0, count*len(in))
	for k := 0; k < count; k++ {
		deg := startAngle + 360*float64(k)/float64(max(count, 1))
		rad := deg * math.Pi / 180
		px := cx + radius*math.Cos(rad)
		py := cy + radius*math.Sin(rad)
		t := xform.Translation(px, py)
		if faceOut {
			t = t.Mul(xform.Rotation(deg, 0, 0))
		}
		out = append(out, t.ApplySet(in)...)
	}
	return out, nil
}
