package xform

import "github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"

// Translate moves every point of the input by (dx, dy).
func Translate(p domain.Params, in domain.PathSet) (domain.PathSet, error) {
	dx := p.Float("dx", 0)
	dy := p.Float("dy", 0)
	return Translation(dx, dy).ApplySet(in), nil
}

// Rotate rotates the input by angle degrees around the pivot (cx, cy).
func Rotate(p domain.Params, in domain.PathSet) (domain.PathSet, error) {
	angle := p.Float("angle", 0)
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)
	return Rotation(angle, cx, cy).ApplySet(in), nil
}

// Scale scales the input by (sx, sy) around the pivot (cx, cy). A single
// "scale" field sets both axes when the per-axis fields are absent.
func Scale(p domain.Params, in domain.PathSet) (domain.PathSet, error) {
	s := p.Float("scale", 1)
	sx := p.Float("sx", s)
	sy := p.Float("sy", s)
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)
	return Scaling(sx, sy, cx, cy).ApplySet(in), nil
}
