package script

import (
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"github.com/cogentcore/yaegi/interp"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/xform"
)

// The helper API is injected into the interpreter's universe scope, so
// scripts call Circle, Translate, Input and friends unqualified. Nothing
// else is available: there is no stdlib in the sandbox, and any import
// in user code fails to resolve.

func line(x1, y1, x2, y2 float64) domain.PathSet {
	return domain.PathSet{{{X: x1, Y: y1}, {X: x2, Y: y2}}}
}

func rect(x, y, w, h float64) domain.PathSet {
	return domain.PathSet{{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h},
		{X: x, Y: y + h}, {X: x, Y: y},
	}}
}

func circle(cx, cy, r float64, segments int) domain.PathSet {
	if segments < 3 {
		segments = 3
	}
	path := make(domain.Path, segments+1)
	for i := 0; i < segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		path[i] = domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	path[segments] = path[0]
	return domain.PathSet{path}
}

func polygon(cx, cy, r float64, sides int) domain.PathSet {
	if sides < 3 {
		sides = 3
	}
	path := make(domain.Path, sides+1)
	for i := 0; i < sides; i++ {
		a := float64(i)/float64(sides)*2*math.Pi - math.Pi/2
		path[i] = domain.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	path[sides] = path[0]
	return domain.PathSet{path}
}

func translate(ps domain.PathSet, dx, dy float64) domain.PathSet {
	return xform.Translation(dx, dy).ApplySet(ps)
}

func rotate(ps domain.PathSet, deg, cx, cy float64) domain.PathSet {
	return xform.Rotation(deg, cx, cy).ApplySet(ps)
}

func scale(ps domain.PathSet, sx, sy, cx, cy float64) domain.PathSet {
	return xform.Scaling(sx, sy, cx, cy).ApplySet(ps)
}

func merge(sets ...domain.PathSet) domain.PathSet {
	var out domain.PathSet
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

func sinDeg(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosDeg(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }

// random hashes (seed, i) to a stable value in [0,1). Scripts get
// repeatable randomness with no hidden state between runs.
func random(seed, i int) float64 {
	var d xxhash.Digest
	d.Reset()
	var buf [16]byte
	putInt64(buf[0:8], int64(seed))
	putInt64(buf[8:16], int64(i))
	_, _ = d.Write(buf[:])
	return float64(d.Sum64()%1_000_000_000) / 1_000_000_000
}

// noise is 2-D value noise: bilinear interpolation of lattice randoms
// with smoothstep easing.
func noise(x, y float64, seed int) float64 {
	x0, y0 := math.Floor(x), math.Floor(y)
	fx, fy := x-x0, y-y0
	lattice := func(ix, iy float64) float64 {
		return random(seed, int(ix)*73856093^int(iy)*19349663)
	}
	sx := fx * fx * (3 - 2*fx)
	sy := fy * fy * (3 - 2*fy)
	top := lattice(x0, y0)*(1-sx) + lattice(x0+1, y0)*sx
	bot := lattice(x0, y0+1)*(1-sx) + lattice(x0+1, y0+1)*sx
	return top*(1-sy) + bot*sy
}

func putInt64(b []byte, v int64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

// exports builds the universe-scope symbol table for one run. The input
// closure delivers that run's upstream paths to the script.
func exports(input domain.PathSet) interp.Exports {
	return interp.Exports{
		".": map[string]reflect.Value{
			"Point":   reflect.ValueOf(domain.Point{}),
			"Path":    reflect.ValueOf(domain.Path(nil)),
			"PathSet": reflect.ValueOf(domain.PathSet(nil)),

			"Input": reflect.ValueOf(func() domain.PathSet { return input }),

			"Line":    reflect.ValueOf(line),
			"Rect":    reflect.ValueOf(rect),
			"Circle":  reflect.ValueOf(circle),
			"Polygon": reflect.ValueOf(polygon),

			"Translate": reflect.ValueOf(translate),
			"Rotate":    reflect.ValueOf(rotate),
			"Scale":     reflect.ValueOf(scale),
			"Merge":     reflect.ValueOf(merge),

			"Sin":    reflect.ValueOf(sinDeg),
			"Cos":    reflect.ValueOf(cosDeg),
			"Sqrt":   reflect.ValueOf(math.Sqrt),
			"Pow":    reflect.ValueOf(math.Pow),
			"Abs":    reflect.ValueOf(math.Abs),
			"PI":     reflect.ValueOf(math.Pi),
			"Random": reflect.ValueOf(random),
			"Noise":  reflect.ValueOf(noise),
		},
	}
}
