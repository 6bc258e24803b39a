// Package attractor implements the strange-attractor node: iterating a
// fixed nonlinear recurrence and emitting the orbit as a single path.
// Evaluation is fully deterministic: identical parameters always produce
// byte-identical point sequences.
package attractor

import (
	"math"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"go.trai.ch/zerr"
)

// Family names a recurrence.
type Family string

const (
	Clifford     Family = "clifford"
	DeJong       Family = "dejong"
	Bedhead      Family = "bedhead"
	Tinkerbell   Family = "tinkerbell"
	GumowskiMira Family = "gumowski-mira"
)

// divergenceLimit truncates orbits that blow up instead of erroring; a
// divergent parameter choice is a boring picture, not a failure.
const divergenceLimit = 1e6

// start returns the fixed starting point of a family.
func start(f Family) (x, y float64) {
	switch f {
	case Clifford, DeJong:
		return 0, 0
	case Bedhead:
		return 1, 1
	case Tinkerbell:
		return -0.72, -0.64
	case GumowskiMira:
		return 0.1, 0.1
	}
	return 0, 0
}

// step computes the next point. The gumowski-mira recurrence uses a, b and
// c only; d is accepted and ignored for that family.
func step(f Family, a, b, c, d, x, y float64) (float64, float64) {
	switch f {
	case Clifford:
		return math.Sin(a*y) + c*math.Cos(a*x),
			math.Sin(b*x) + d*math.Cos(b*y)
	case DeJong:
		return math.Sin(a*y) - math.Cos(b*x),
			math.Sin(c*x) - math.Cos(d*y)
	case Bedhead:
		bb := b
		if bb == 0 {
			bb = 1e-9
		}
		return math.Sin(x*y/bb)*y + math.Cos(a*x-y),
			x + math.Sin(y)/bb
	case Tinkerbell:
		return x*x - y*y + a*x + b*y,
			2*x*y + c*x + d*y
	case GumowskiMira:
		f0 := mira(c, x)
		nx := y + a*(1-b*y*y)*y + f0
		return nx, mira(c, nx) - x
	}
	return x, y
}

func mira(mu, x float64) float64 {
	x2 := x * x
	return mu*x + 2*(1-mu)*x2/((1+x2)*(1+x2))
}

// Eval evaluates the attractor node. The raw orbit is generated first,
// then uniformly scaled and re-centered so its larger extent spans the
// scale parameter around (cx, cy).
func Eval(p domain.Params) (domain.PathSet, error) {
	family := Family(p.String("type", string(Clifford)))
	switch family {
	case Clifford, DeJong, Bedhead, Tinkerbell, GumowskiMira:
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "unsupported value"), "type", string(family))
	}
	iterations := p.Int("iterations", 5000)
	if iterations < 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "below 1"), "field", "iterations")
	}
	a := p.Float("a", -1.4)
	b := p.Float("b", 1.6)
	c := p.Float("c", 1.0)
	d := p.Float("d", 0.7)
	scale := p.Float("scale", 200)
	cx := p.Float("cx", 0)
	cy := p.Float("cy", 0)

	raw := make(domain.Path, 0, iterations)
	x, y := start(family)
	raw = append(raw, domain.Point{X: x, Y: y})
	for i := 1; i < iterations; i++ {
		x, y = step(family, a, b, c, d, x, y)
		if math.Abs(x) > divergenceLimit || math.Abs(y) > divergenceLimit ||
			math.IsNaN(x) || math.IsNaN(y) {
			break
		}
		raw = append(raw, domain.Point{X: x, Y: y})
	}

	return domain.PathSet{fit(raw, scale, cx, cy)}, nil
}

// fit re-centers the orbit on (cx, cy) and scales its larger bounding
// extent to size.
func fit(path domain.Path, size, cx, cy float64) domain.Path {
	min, max, ok := domain.PathSet{path}.Bounds()
	if !ok {
		return path
	}
	w := max.X - min.X
	h := max.Y - min.Y
	extent := math.Max(w, h)
	s := 1.0
	if extent > 0 {
		s = size / extent
	}
	mx := (min.X + max.X) / 2
	my := (min.Y + max.Y) / 2
	out := make(domain.Path, len(path))
	for i, pt := range path {
		out[i] = domain.Point{
			X: cx + (pt.X-mx)*s,
			Y: cy + (pt.Y-my)*s,
		}
	}
	return out
}
