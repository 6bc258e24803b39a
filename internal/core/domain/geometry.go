// Package domain contains the core domain models for the node graph and the
// geometry it evaluates to.
package domain

import "math"

// Point is a position in 2-D screen space (y grows downward).
type Point struct {
	X float64
	Y float64
}

// Path is an ordered polyline. Paths with fewer than two points are
// degenerate and are dropped when a node's output is collected.
type Path []Point

// PathSet is an ordered collection of paths. Order is meaningful: it is the
// draw/plot sequence. Duplicate paths are legal.
type PathSet []Path

// Degenerate reports whether the path is too short to draw.
func (p Path) Degenerate() bool {
	return len(p) < 2
}

// Clone returns a deep copy of the path.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Clone returns a deep copy of the path set.
func (ps PathSet) Clone() PathSet {
	if ps == nil {
		return nil
	}
	out := make(PathSet, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}
	return out
}

// PointCount returns the total number of points across all paths.
func (ps PathSet) PointCount() int {
	n := 0
	for _, p := range ps {
		n += len(p)
	}
	return n
}

// Bounds returns the axis-aligned bounding box of the path set.
// The second return value is false when the set contains no points.
func (ps PathSet) Bounds() (min, max Point, ok bool) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for _, p := range ps {
		for _, pt := range p {
			if pt.X < min.X {
				min.X = pt.X
			}
			if pt.Y < min.Y {
				min.Y = pt.Y
			}
			if pt.X > max.X {
				max.X = pt.X
			}
			if pt.Y > max.Y {
				max.Y = pt.Y
			}
			ok = true
		}
	}
	if !ok {
		return Point{}, Point{}, false
	}
	return min, max, true
}

// Center returns the center of the bounding box, or the zero point for an
// empty set.
func (ps PathSet) Center() Point {
	min, max, ok := ps.Bounds()
	if !ok {
		return Point{}
	}
	return Point{(min.X + max.X) / 2, (min.Y + max.Y) / 2}
}

// Compact returns the set with degenerate paths removed. The original
// backing array is reused when nothing needs to be dropped.
func (ps PathSet) Compact() PathSet {
	clean := true
	for _, p := range ps {
		if p.Degenerate() {
			clean = false
			break
		}
	}
	if clean {
		return ps
	}
	out := make(PathSet, 0, len(ps))
	for _, p := range ps {
		if !p.Degenerate() {
			out = append(out, p)
		}
	}
	return out
}
