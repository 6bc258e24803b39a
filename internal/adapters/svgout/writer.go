// Package svgout renders evaluated path sets as SVG documents suited to
// pen plotting: stroked polylines, no fills, one group per color well.
package svgout

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
)

// wellColors maps color-well tags to stroke colors. Tag 0 (untagged)
// draws in the default pen.
var wellColors = map[int]string{
	0: "#000000",
	1: "#000000",
	2: "#d62728",
	3: "#1f77b4",
	4: "#2ca02c",
}

// Writer implements ports.PathWriter producing SVG.
type Writer struct {
	// StrokeWidth in document units; 1 when zero.
	StrokeWidth float64
}

var _ ports.PathWriter = (*Writer)(nil)

func NewWriter() *Writer { return &Writer{} }

// Write emits the document. Paths sharing a well tag are grouped so a
// plotter driver can split the file into per-pen layers.
func (wr *Writer) Write(w io.Writer, paths domain.PathSet, colors []int, width, height int) error {
	sw := wr.StrokeWidth
	if sw <= 0 {
		sw = 1
	}

	canvas := svg.New(w)
	canvas.Start(width, height)

	// Stable well order: untagged first, then wells 1..4.
	for _, well := range wellOrder(colors, len(paths)) {
		color, ok := wellColors[well]
		if !ok {
			color = wellColors[0]
		}
		canvas.Group(fmt.Sprintf(`id="well-%d"`, well),
			fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%g" stroke-linecap="round" stroke-linejoin="round"`, color, sw))
		for i, path := range paths {
			if tag(colors, i) != well || path.Degenerate() {
				continue
			}
			canvas.Path(pathData(path))
		}
		canvas.Gend()
	}

	canvas.End()
	return nil
}

func tag(colors []int, i int) int {
	if i < len(colors) {
		return colors[i]
	}
	return 0
}

func wellOrder(colors []int, n int) []int {
	seen := map[int]bool{}
	var order []int
	for i := 0; i < n; i++ {
		c := tag(colors, i)
		if !seen[c] {
			seen[c] = true
			order = append(order, c)
		}
	}
	if len(order) == 0 {
		order = []int{0}
	}
	// Selection sort keeps it tiny; at most five wells exist.
	for i := range order {
		for j := i + 1; j < len(order); j++ {
			if order[j] < order[i] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	return order
}

// pathData renders a polyline as SVG path data with absolute commands.
func pathData(path domain.Path) string {
	var b strings.Builder
	for i, pt := range path {
		if i == 0 {
			fmt.Fprintf(&b, "M%.3f %.3f", pt.X, pt.Y)
		} else {
			fmt.Fprintf(&b, " L%.3f %.3f", pt.X, pt.Y)
		}
	}
	return b.String()
}
