package aksara

import (
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/text/strokefont"
	"go.trai.ch/zerr"
)

// Anchor places a combining mark relative to its base glyph cell.
type Anchor string

const (
	// AnchorBase positions the mark at the base cell origin plus its
	// offset; used for marks drawn before or under the base.
	AnchorBase Anchor = "base"
	// AnchorCenter positions the mark over the horizontal center of the
	// base cell; used for above marks.
	AnchorCenter Anchor = "center"
	// AnchorRight positions the mark at the right edge of the base cell
	// and widens the advance; used for trailing marks.
	AnchorRight Anchor = "right"
)

// glyphDef holds the stroke spec on the 6x8 authoring grid (y up) plus
// mark anchoring. Offsets are in grid units.
type glyphDef struct {
	spec   string
	mark   bool
	anchor Anchor
	dx, dy float64
}

// The shapes are schematic single-stroke approximations of the letter
// forms, sufficient for plotting; they are not typographic outlines.
var glyphDefs = map[rune]glyphDef{
	LetterHa:  {spec: "0,0 0,4 1,6 2,4 2,0; 2,0 3,3 4,0 5,3 6,0 6,5"},
	LetterNa:  {spec: "0,0 0,5 2,6 2,0; 2,0 4,4 6,4 6,0"},
	LetterCa:  {spec: "0,4 1,6 2,4 2,0; 2,2 4,2 4,0 6,0 6,5"},
	LetterRa:  {spec: "0,0 1,5 3,6 5,5 6,2 6,0; 2,3 4,3"},
	LetterKa:  {spec: "0,0 0,5 1,6 1,0; 1,3 3,5 3,0; 3,2 5,4 6,2 6,0"},
	LetterDa:  {spec: "0,0 0,6 2,5 2,0; 2,3 4,3 4,0 6,0 6,4"},
	LetterTa:  {spec: "0,0 0,5 2,5 2,0; 2,0 4,0 4,5 6,5 6,0"},
	LetterSa:  {spec: "0,0 1,4 2,0 3,4 4,0 5,4 6,0 6,6"},
	LetterWa:  {spec: "0,0 0,4 2,6 3,3 3,0; 3,2 5,4 6,1 6,0"},
	LetterLa:  {spec: "0,0 0,6 1,4 2,6 2,0; 2,0 4,2 6,2 6,0"},
	LetterPa:  {spec: "0,0 0,5 2,5 2,0; 2,0 4,5 6,5 6,0"},
	LetterDha: {spec: "0,0 1,6 2,0; 2,2 3,5 4,2 5,5 6,2 6,0"},
	LetterJa:  {spec: "0,0 0,4 1,6 2,4; 2,4 2,0 4,0 4,4 6,4 6,0"},
	LetterYa:  {spec: "0,0 0,4 1,2 2,4 2,0; 2,0 3,4 4,0 5,4 6,0"},
	LetterNya: {spec: "0,0 0,5 1,3 2,5 2,0; 2,1 3,3 4,1 5,3 6,1 6,0"},
	LetterMa:  {spec: "0,0 0,6 1,3 2,6 2,0; 2,0 4,3 6,3 6,0"},
	LetterGa:  {spec: "0,0 0,5 2,6 2,2; 2,2 0,2; 2,4 4,6 4,0 6,0 6,4"},
	LetterBa:  {spec: "0,0 0,6 2,6 2,0; 0,3 2,3; 2,0 4,4 6,4 6,0"},
	LetterTha: {spec: "0,0 0,4 2,4 2,0; 2,2 4,2; 4,0 4,5 6,5 6,0"},
	LetterNga: {spec: "0,0 0,4 2,6 4,4 4,0; 4,1 6,3 6,0"},

	SignWulu:    {spec: "2,9 3,10 4,9 3,8 2,9", mark: true, anchor: AnchorCenter, dy: 0},
	SignSuku:    {spec: "4,0 4,-2 3,-3 2,-2", mark: true, anchor: AnchorBase, dy: 0},
	SignTaling:  {spec: "-1,6 -3,3 -1,0", mark: true, anchor: AnchorBase, dx: -0.5},
	SignTarung:  {spec: "1,6 1,0 2,0", mark: true, anchor: AnchorRight, dx: 0.5},
	SignPepet:   {spec: "2,9 3,11 4,9", mark: true, anchor: AnchorCenter},
	SignPangkon: {spec: "1,6 0,3 1,0 2,3", mark: true, anchor: AnchorRight, dx: 0.5},
	SignWignyan: {spec: "1,5 1,1 3,1 3,3 1,3", mark: true, anchor: AnchorRight, dx: 0.5},
	SignLayar:   {spec: "1,9 5,11", mark: true, anchor: AnchorCenter},
	SignCecak:   {spec: "3,9 3,10", mark: true, anchor: AnchorCenter, dx: 0},
}

const (
	gridW = 8.0
	gridH = 8.0
)

var glyphStrokes = map[rune][]domain.Path{}

func init() {
	for r, def := range glyphDefs {
		glyphStrokes[r] = strokefont.ParseSpec(def.spec, gridW, gridH)
	}
}

// Options controls script rendering.
type Options struct {
	X           float64
	Y           float64
	Size        float64
	CharSpacing float64 // extra advance per base glyph, fraction of Size
	LineSpacing float64 // extra advance per line, fraction of Size
}

// Render transliterates the Latin input and renders the resulting code
// points. Marks are positioned relative to the anchor of the base glyph
// they follow; right-anchored marks widen the advance of their base.
func Render(input string, o Options) domain.PathSet {
	var out domain.PathSet
	penX := o.X
	penY := o.Y
	advance := o.Size * (1 + o.CharSpacing)
	lineStep := o.Size * (1.35 + o.LineSpacing)

	// Origin of the current base cell, for marks.
	baseX, baseY := penX, penY
	haveBase := false

	place := func(r rune, originX, originY float64) {
		for _, stroke := range glyphStrokes[r] {
			path := make(domain.Path, len(stroke))
			for i, pt := range stroke {
				path[i] = domain.Point{
					X: originX + pt.X*o.Size,
					Y: originY + (1-pt.Y)*o.Size,
				}
			}
			out = append(out, path)
		}
	}

	for _, r := range Transliterate(input) {
		if r == '\n' {
			penX = o.X
			penY += lineStep
			haveBase = false
			continue
		}
		def, known := glyphDefs[r]
		if !known {
			// Passthrough runes (spaces, punctuation) advance the pen.
			penX += advance
			haveBase = false
			continue
		}
		if !def.mark {
			baseX, baseY = penX, penY
			haveBase = true
			place(r, baseX, baseY)
			penX += advance
			continue
		}
		if !haveBase {
			continue
		}
		ox, oy := baseX, baseY
		switch def.anchor {
		case AnchorCenter:
			ox = baseX
		case AnchorRight:
			ox = baseX + 6/gridW*o.Size
			penX += o.Size * 0.4
		}
		place(r, ox+def.dx/gridW*o.Size, oy-def.dy/gridH*o.Size)
	}
	return out
}

// Eval evaluates the script-text node.
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
