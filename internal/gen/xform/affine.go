// Package xform implements the affine transform primitives and the
// translate/rotate/scale node evaluators.
package xform

import (
	"math"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

// Affine is a 2-D affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Translation returns a transform moving points by (dx, dy).
func Translation(dx, dy float64) Affine {
	return Affine{A: 1, D: 1, E: dx, F: dy}
}

// Rotation returns a rotation by deg degrees around (cx, cy). Positive
// angles rotate clockwise in screen coordinates (y grows downward).
func Rotation(deg, cx, cy float64) Affine {
	rad := deg * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	// Standard CCW matrix; in y-down space it appears clockwise.
	return Affine{
		A: cos, C: -sin, E: cx - cos*cx + sin*cy,
		B: sin, D: cos, F: cy - sin*cx - cos*cy,
	}
}

// Scaling returns a scale by (sx, sy) around (cx, cy).
func Scaling(sx, sy, cx, cy float64) Affine {
	return Affine{
		A: sx, E: cx - sx*cx,
		D: sy, F: cy - sy*cy,
	}
}

// Mul composes transforms: (a.Mul(b)).Apply(p) == a.Apply(b.Apply(p)),
// i.e. b runs first.
func (a Affine) Mul(b Affine) Affine {
	return Affine{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Apply transforms a single point.
func (a Affine) Apply(p domain.Point) domain.Point {
	return domain.Point{
		X: a.A*p.X + a.C*p.Y + a.E,
		Y: a.B*p.X + a.D*p.Y + a.F,
	}
}

// ApplyPath transforms every point of a path into a new path.
func (a Affine) ApplyPath(p domain.Path) domain.Path {
	out := make(domain.Path, len(p))
	for i, pt := range p {
		out[i] = a.Apply(pt)
	}
	return out
}

// ApplySet transforms every path of a set into a new set.
func (a Affine) ApplySet(ps domain.PathSet) domain.PathSet {
	out := make(domain.PathSet, len(ps))
	for i, p := range ps {
		out[i] = a.ApplyPath(p)
	}
	return out
}
