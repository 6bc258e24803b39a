package raster

import (
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/text/strokefont"
	"go.trai.ch/zerr"
)

// defaultCharset runs darkest to lightest. The trailing space maps the
// brightest cells to no strokes at all.
const defaultCharset = "@%#*+=-:. "

// Ascii divides the target region into a character grid, averages
// luminance per cell and renders the matching charset glyph with the
// built-in stroke font.
func Ascii(p domain.Params, img *domain.Raster) (domain.PathSet, error) {
	if img == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "no image connected"), "field", "source")
	}
	x := p.Float("x", 0)
	y := p.Float("y", 0)
	w := p.Float("width", 300)
	h := p.Float("height", 300)
	cols := p.Int("cols", 40)
	rows := p.Int("rows", 0)
	if cols < 1 {
		return nil, zerr.With(zerr.Wrap(domain.ErrParameter, "must be at least 1"), "field", "cols")
	}
	cellW := w / float64(cols)
	if rows < 1 {
		// Derive rows from the cell aspect so characters stay roughly square.
		rows = int(h / cellW)
		if rows < 1 {
			rows = 1
		}
	}
	cellH := h / float64(rows)

	charset := []rune(p.String("charset", defaultCharset))
	if len(charset) == 0 {
		charset = []rune(defaultCharset)
	}
	if p.Bool("reverse", false) {
		rev := make([]rune, len(charset))
		for i, r := range charset {
			rev[len(charset)-1-i] = r
		}
		charset = rev
	}

	var out domain.PathSet
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			lum := cellLuminance(img,
				(float64(col)+0.0)/float64(cols), (float64(row)+0.0)/float64(rows),
				(float64(col)+1.0)/float64(cols), (float64(row)+1.0)/float64(rows))
			// Dark cells pick from the front of the charset.
			idx := int((1 - lum) * float64(len(charset)))
			if idx >= len(charset) {
				idx = len(charset) - 1
			}
			strokes, ok := strokefont.Glyph(charset[idx])
			if !ok {
				continue
			}
			ox := x + float64(col)*cellW
			oy := y + float64(row)*cellH
			for _, stroke := range strokes {
				path := make(domain.Path, len(stroke))
				for i, pt := range stroke {
					path[i] = domain.Point{
						X: ox + pt.X*cellW,
						Y: oy + (1-pt.Y)*cellH,
					}
				}
				out = append(out, path)
			}
		}
	}
	return out, nil
}

// cellLuminance averages a small fixed sample grid over the cell in
// normalized image coordinates.
func cellLuminance(img *domain.Raster, u0, v0, u1, v1 float64) float64 {
	const n = 3
	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			u := u0 + (u1-u0)*(float64(i)+0.5)/n
			v := v0 + (v1-v0)*(float64(j)+0.5)/n
			sum += img.Sample(u, v)
		}
	}
	return sum / (n * n)
}
