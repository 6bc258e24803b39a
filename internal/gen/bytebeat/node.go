package bytebeat

import (
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/xform"
	"go.trai.ch/zerr"
)

// Eval evaluates the bytebeat node: the formula is sampled at t = 0 ..
// count-1, each value folded to 0..255 and mapped to geometry per mode.
//
//   - position: one polyline, x advancing by step per t, y displaced by
//     the normalized value times scaleY.
//   - rotation: one short marker per t, rotated by the value mapped to a
//     full turn.
//   - scale: one marker per t, scaled by the normalized value.
//   - all: position, rotation and scale applied to every marker.
func Eval(p domain.Params) (domain.PathSet, error) {
	formula := p.String("formula", "t")
	count := p.Int("count", 256)
	if count < 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "below 1"), "field", "count")
	}
	mode := p.String("mode", "position")
	step := p.Float("step", 2)
	scaleX := p.Float("scaleX", 20)
	scaleY := p.Float("scaleY", 100)
	baseX := p.Float("baseX", 0)
	baseY := p.Float("baseY", 0)

	expr, err := Parse(formula)
	if err != nil {
		return nil, err
	}

	norm := make([]float64, count)
	for t := 0; t < count; t++ {
		norm[t] = float64(Fold(expr.Eval(int64(t)))) / 255
	}

	switch mode {
	case "position":
		path := make(domain.Path, count)
		for t := 0; t < count; t++ {
			path[t] = domain.Point{
				X: baseX + float64(t)*step,
				Y: baseY - norm[t]*scaleY,
			}
		}
		return domain.PathSet{path}, nil
	case "rotation", "scale", "all":
		out := make(domain.PathSet, 0, count)
		for t := 0; t < count; t++ {
			cx := baseX + float64(t)*step
			cy := baseY
			marker := domain.Path{
				{X: cx - scaleX/2, Y: cy},
				{X: cx + scaleX/2, Y: cy},
			}
			tf := xform.Identity()
			if mode == "scale" || mode == "all" {
				s := 0.1 + 0.9*norm[t]
				tf = xform.Scaling(s, s, cx, cy).Mul(tf)
			}
			if mode == "rotation" || mode == "all" {
				tf = xform.Rotation(norm[t]*360, cx, cy).Mul(tf)
			}
			if mode == "all" {
				tf = xform.Translation(0, -norm[t]*scaleY).Mul(tf)
			}
			out = append(out, tf.ApplyPath(marker))
		}
		return out, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "unsupported value"), "mode", mode)
	}
}
