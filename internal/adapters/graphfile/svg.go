package graphfile

import (
	"encoding/xml"
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

// ParseSVG extracts polyline geometry from an SVG document. It covers
// the subset plotter-oriented files actually use: line, polyline,
// polygon, rect, and paths with absolute/relative moveto-lineto
// commands. Curves are not flattened; a path command outside the subset
// fails the asset.
func ParseSVG(data []byte) (domain.PathSet, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	var out domain.PathSet

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		attr := func(name string) string {
			for _, a := range start.Attr {
				if a.Name.Local == name {
					return a.Value
				}
			}
			return ""
		}
		switch start.Name.Local {
		case "line":
			x1, y1 := parseFloat(attr("x1")), parseFloat(attr("y1"))
			x2, y2 := parseFloat(attr("x2")), parseFloat(attr("y2"))
			out = append(out, domain.Path{{X: x1, Y: y1}, {X: x2, Y: y2}})
		case "polyline", "polygon":
			path, err := parsePoints(attr("points"))
			if err != nil {
				return nil, err
			}
			if start.Name.Local == "polygon" && len(path) > 1 {
				path = append(path, path[0])
			}
			if !path.Degenerate() {
				out = append(out, path)
			}
		case "rect":
			x, y := parseFloat(attr("x")), parseFloat(attr("y"))
			w, h := parseFloat(attr("width")), parseFloat(attr("height"))
			out = append(out, domain.Path{
				{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h},
				{X: x, Y: y + h}, {X: x, Y: y},
			})
		case "path":
			paths, err := parsePathData(attr("d"))
			if err != nil {
				return nil, err
			}
			out = append(out, paths...)
		}
	}
	return out, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

// parsePoints reads a points attribute: coordinate pairs separated by
// whitespace or commas.
func parsePoints(s string) (domain.Path, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields)%2 != 0 {
		return nil, zerr.Wrap(domain.ErrParse, "odd coordinate count in points attribute")
	}
	path := make(domain.Path, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, errX := strconv.ParseFloat(fields[i], 64)
		y, errY := strconv.ParseFloat(fields[i+1], 64)
		if errX != nil || errY != nil {
			return nil, zerr.Wrap(domain.ErrParse, "bad coordinate in points attribute")
		}
		path = append(path, domain.Point{X: x, Y: y})
	}
	return path, nil
}

// parsePathData handles M/m, L/l, H/h, V/v and Z/z. Each moveto starts a
// new subpath; closepath appends the subpath's first point.
func parsePathData(d string) (domain.PathSet, error) {
	var out domain.PathSet
	var cur domain.Path
	var pos domain.Point

	flush := func() {
		if !cur.Degenerate() {
			out = append(out, cur)
		}
		cur = nil
	}

	toks := tokenizePathData(d)
	i := 0
	next := func() (float64, bool) {
		if i >= len(toks) {
			return 0, false
		}
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return 0, false
		}
		i++
		return v, true
	}

	cmd := byte(0)
	for i < len(toks) {
		t := toks[i]
		if len(t) == 1 && isPathCommand(t[0]) {
			cmd = t[0]
			i++
			if cmd == 'Z' || cmd == 'z' {
				if len(cur) > 0 {
					cur = append(cur, cur[0])
				}
				flush()
				continue
			}
		}
		if cmd == 0 {
			return nil, zerr.Wrap(domain.ErrParse, "path data does not start with a command")
		}
		rel := cmd >= 'a'
		var pt domain.Point
		switch cmd {
		case 'M', 'm', 'L', 'l':
			x, okX := next()
			y, okY := next()
			if !okX || !okY {
				return nil, zerr.Wrap(domain.ErrParse, "truncated path coordinates")
			}
			pt = domain.Point{X: x, Y: y}
			if rel {
				pt.X += pos.X
				pt.Y += pos.Y
			}
		case 'H', 'h':
			x, ok := next()
			if !ok {
				return nil, zerr.Wrap(domain.ErrParse, "truncated path coordinates")
			}
			pt = domain.Point{X: x, Y: pos.Y}
			if rel {
				pt.X += pos.X
			}
		case 'V', 'v':
			y, ok := next()
			if !ok {
				return nil, zerr.Wrap(domain.ErrParse, "truncated path coordinates")
			}
			pt = domain.Point{X: pos.X, Y: y}
			if rel {
				pt.Y += pos.Y
			}
		default:
			return nil, zerr.With(zerr.Wrap(domain.ErrParse, "unsupported path command"), "command", string(cmd))
		}

		if cmd == 'M' || cmd == 'm' {
			flush()
			// Subsequent pairs after a moveto are implicit linetos.
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}
		}
		cur = append(cur, pt)
		pos = pt
	}
	flush()
	return out, nil
}

func isPathCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'Z', 'z',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
		return true
	}
	return false
}

// tokenizePathData splits path data into command letters and numbers.
func tokenizePathData(d string) []string {
	var toks []string
	var num strings.Builder
	flushNum := func() {
		if num.Len() > 0 {
			toks = append(toks, num.String())
			num.Reset()
		}
	}
	for idx := 0; idx < len(d); idx++ {
		c := d[idx]
		switch {
		case c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E':
			num.WriteByte(c)
		case c == '-' || c == '+':
			// Sign starts a new number unless it follows an exponent.
			if num.Len() > 0 {
				last := num.String()[num.Len()-1]
				if last == 'e' || last == 'E' {
					num.WriteByte(c)
					continue
				}
			}
			flushNum()
			num.WriteByte(c)
		case c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flushNum()
		default:
			flushNum()
			toks = append(toks, string(c))
		}
	}
	flushNum()
	return toks
}
