// Package strokefont renders text as polylines using a built-in
// single-stroke vector font. Glyphs are authored on a 6x8 unit grid with y
// growing upward; rendering flips the vertical axis so output is correct
// in screen space (y down).
package strokefont

import (
	"strconv"
	"strings"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"go.trai.ch/zerr"
)

// glyphSpec is the authoring format: strokes separated by ';', points by
// spaces, coordinates by ','. Coordinates are grid units on the 6x8 cell.
type glyphSpec = string

var glyphSpecs = map[rune]glyphSpec{
	'A': "0,0 3,8 6,0; 1,3 5,3",
	'B': "0,0 0,8 4,8 5,7 5,5 4,4 0,4; 4,4 5,3 5,1 4,0 0,0",
	'C': "6,1 4,0 2,0 0,2 0,6 2,8 4,8 6,7",
	'D': "0,0 0,8 3,8 6,6 6,2 3,0 0,0",
	'E': "6,0 0,0 0,8 6,8; 0,4 4,4",
	'F': "0,0 0,8 6,8; 0,4 4,4",
	'G': "6,7 4,8 2,8 0,6 0,2 2,0 4,0 6,2 6,4 3,4",
	'H': "0,0 0,8; 6,0 6,8; 0,4 6,4",
	'I': "1,0 5,0; 3,0 3,8; 1,8 5,8",
	'J': "5,8 5,2 4,0 2,0 0,2",
	'K': "0,0 0,8; 6,8 0,3; 2,5 6,0",
	'L': "0,8 0,0 6,0",
	'M': "0,0 0,8 3,4 6,8 6,0",
	'N': "0,0 0,8 6,0 6,8",
	'O': "0,2 0,6 2,8 4,8 6,6 6,2 4,0 2,0 0,2",
	'P': "0,0 0,8 4,8 6,7 6,5 4,4 0,4",
	'Q': "0,2 0,6 2,8 4,8 6,6 6,2 4,0 2,0 0,2; 4,2 6,0",
	'R': "0,0 0,8 4,8 6,7 6,5 4,4 0,4; 2,4 6,0",
	'S': "0,1 2,0 4,0 6,1 6,3 4,4 2,4 0,5 0,7 2,8 4,8 6,7",
	'T': "0,8 6,8; 3,8 3,0",
	'U': "0,8 0,2 2,0 4,0 6,2 6,8",
	'V': "0,8 3,0 6,8",
	'W': "0,8 1,0 3,5 5,0 6,8",
	'X': "0,0 6,8; 0,8 6,0",
	'Y': "0,8 3,4 6,8; 3,4 3,0",
	'Z': "0,8 6,8 0,0 6,0",
	'0': "0,2 0,6 2,8 4,8 6,6 6,2 4,0 2,0 0,2; 1,1 5,7",
	'1': "2,6 3,8 3,0; 1,0 5,0",
	'2': "0,6 1,8 5,8 6,6 6,5 0,0 6,0",
	'3': "0,7 2,8 4,8 6,7 6,5 4,4; 4,4 6,3 6,1 4,0 2,0 0,1",
	'4': "4,0 4,8 0,2 6,2",
	'5': "6,8 0,8 0,4 4,4 6,3 6,1 4,0 0,0",
	'6': "5,8 2,8 0,5 0,2 2,0 4,0 6,2 6,3 4,4 0,4",
	'7': "0,8 6,8 2,0",
	'8': "2,4 0,5 0,7 2,8 4,8 6,7 6,5 4,4 2,4 0,3 0,1 2,0 4,0 6,1 6,3 4,4",
	'9': "6,4 2,4 0,5 0,7 2,8 4,8 6,6 6,3 4,0 1,0",
	'.': "3,0 3,1",
	',': "3,1 2,0",
	':': "3,1 3,2; 3,5 3,6",
	';': "3,5 3,6; 3,2 2,0",
	'!': "3,8 3,3; 3,0 3,1",
	'?': "0,7 2,8 4,8 6,7 6,5 3,4 3,3; 3,0 3,1",
	'-': "1,4 5,4",
	'+': "1,4 5,4; 3,2 3,6",
	'*': "1,2 5,6; 1,6 5,2; 3,1 3,7",
	'/': "0,0 6,8",
	'(': "4,8 2,6 2,2 4,0",
	')': "2,8 4,6 4,2 2,0",
	'\'': "3,8 3,6",
	'"':  "2,8 2,6; 4,8 4,6",
	'#': "2,0 2,8; 4,0 4,8; 0,5 6,5; 0,3 6,3",
	'@': "4,2 2,2 2,5 4,5 4,2 6,2 6,5 4,8 2,8 0,6 0,3 2,0 5,0",
	'%': "0,0 6,8; 1,7 2,7 2,8 1,8 1,7; 4,1 5,1 5,0 4,0 4,1",
	'=': "1,3 5,3; 1,5 5,5",
	'<': "5,7 1,4 5,1",
	'>': "1,7 5,4 1,1",
	'_': "0,0 6,0",
	'&': "6,0 1,6 1,7 2,8 3,8 4,7 4,6 0,2 0,1 1,0 3,0 6,4",
}

const (
	gridW = 8.0 // advance width in grid units (6-unit cell + 2 gap)
	gridH = 8.0
)

// glyphs holds the parsed table, normalized to the unit cell (y up).
var glyphs = map[rune][]domain.Path{}

func init() {
	for r, spec := range glyphSpecs {
		glyphs[r] = ParseSpec(spec, gridW, gridH)
	}
}

// ParseSpec parses the stroke authoring format, dividing coordinates by
// the given grid size to normalize into the unit cell. It is shared with
// the script glyph tables.
func ParseSpec(spec string, gw, gh float64) []domain.Path {
	var strokes []domain.Path
	for _, s := range strings.Split(spec, ";") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		fields := strings.Fields(s)
		stroke := make(domain.Path, 0, len(fields))
		for _, f := range fields {
			xy := strings.SplitN(f, ",", 2)
			x, _ := strconv.ParseFloat(xy[0], 64)
			y, _ := strconv.ParseFloat(xy[1], 64)
			stroke = append(stroke, domain.Point{X: x / gw, Y: y / gh})
		}
		strokes = append(strokes, stroke)
	}
	return strokes
}

// Glyph returns the normalized strokes for a rune. Lowercase letters fall
// back to their uppercase forms; unknown runes have no strokes.
func Glyph(r rune) ([]domain.Path, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	g, ok := glyphs[r]
	return g, ok
}

// Options controls text layout.
type Options struct {
	X           float64 // left edge of the first character
	Y           float64 // top edge of the first line
	Size        float64 // line height in output units
	CharSpacing float64 // extra advance per character, as a fraction of Size
	LineSpacing float64 // extra advance per line, as a fraction of Size
}

// Render lays out the string left to right, honoring newlines, and emits
// one polyline per glyph stroke. Unknown runes (and spaces) advance the
// pen without drawing.
func Render(text string, o Options) domain.PathSet {
	var out domain.PathSet
	penX := o.X
	penY := o.Y
	advance := o.Size * (1 + o.CharSpacing)
	lineStep := o.Size * (1.25 + o.LineSpacing)

	for _, r := range text {
		if r == '\n' {
			penX = o.X
			penY += lineStep
			continue
		}
		if strokes, ok := Glyph(r); ok {
			for _, stroke := range strokes {
				path := make(domain.Path, len(stroke))
				for i, pt := range stroke {
					// Vertical flip: the table is y-up, output is y-down.
					path[i] = domain.Point{
						X: penX + pt.X*o.Size,
						Y: penY + (1-pt.Y)*o.Size,
					}
				}
				out = append(out, path)
			}
		}
		penX += advance
	}
	return out
}

// Eval evaluates the text node.
func Eval(p domain.Params) (domain.PathSet, error) {
	size := p.Float("size", 24)
	if size <= 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "must be positive"), "field", "size")
	}
	return Render(p.String("text", ""), Options{
		X:           p.Float("x", 0),
		Y:           p.Float("y", 0),
		Size:        size,
		CharSpacing: p.Float("charSpacing", 0),
		LineSpacing: p.Float("lineSpacing", 0),
	}), nil
}
