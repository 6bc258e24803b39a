package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/layout"
)

// marker is a small cross centered on the origin.
var marker = domain.Path{{X: -1, Y: 0}, {X: 1, Y: 0}}

func elements(n int) domain.PathSet {
	out := make(domain.PathSet, n)
	for i := range out {
		out[i] = marker.Clone()
	}
	return out
}

func center(p domain.Path) domain.Point {
	return domain.PathSet{p}.Center()
}

func TestEval_EmptyInputEmitsCarrier(t *testing.T) {
	out, err := layout.Eval(domain.Params{
		"curve": "line", "x1": 0, "y1": 0, "x2": 100, "y2": 0, "segments": 10,
	}, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0], 11)
	assert.Equal(t, domain.Point{X: 0, Y: 0}, out[0][0])
	assert.Equal(t, domain.Point{X: 100, Y: 0}, out[0][10])
}

func TestEval_LineDistribution(t *testing.T) {
	out, err := layout.Eval(domain.Params{
		"curve": "line", "x1": 0, "y1": 0, "x2": 100, "y2": 0,
		"align": "start", "orient": false,
	}, elements(3))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 0, center(out[0]).X, 1e-9)
	assert.InDelta(t, 50, center(out[1]).X, 1e-9)
	assert.InDelta(t, 100, center(out[2]).X, 1e-9)
}

func TestEval_CenterAlignment(t *testing.T) {
	out, err := layout.Eval(domain.Params{
		"curve": "line", "x1": 0, "y1": 0, "x2": 100, "y2": 0,
		"align": "center", "spacing": 0.5, "orient": false,
	}, elements(2))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 25, center(out[0]).X, 1e-9)
	assert.InDelta(t, 75, center(out[1]).X, 1e-9)
}

func TestEval_Reverse(t *testing.T) {
	out, err := layout.Eval(domain.Params{
		"curve": "line", "x1": 0, "y1": 0, "x2": 100, "y2": 0,
		"align": "start", "reverse": true, "orient": false,
	}, elements(2))
	require.NoError(t, err)
	assert.InDelta(t, 100, center(out[0]).X, 1e-9)
	assert.InDelta(t, 0, center(out[1]).X, 1e-9)
}

func TestEval_CircleStations(t *testing.T) {
	out, err := layout.Eval(domain.Params{
		"curve": "circle", "cx": 0, "cy": 0, "radius": 100,
		"align": "start", "orient": false,
	}, elements(2))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 100, center(out[0]).X, 1e-9)
	// u=1 wraps to the start of the circle.
	assert.InDelta(t, 100, center(out[1]).X, 1e-9)
}

func TestEval_OrientRotatesToTangent(t *testing.T) {
	out, err := layout.Eval(domain.Params{
		"curve": "line", "x1": 0, "y1": 0, "x2": 0, "y2": 100,
		"align": "start", "orient": true,
	}, domain.PathSet{marker.Clone()})
	require.NoError(t, err)
	require.Len(t, out, 1)
	// The marker's long axis now follows the vertical carrier.
	assert.InDelta(t, 0, out[0][0].X, 1e-9)
	assert.InDelta(t, -1, out[0][0].Y, 1e-9)
	assert.InDelta(t, 1, out[0][1].Y, 1e-9)
}

func TestEval_SingleElementOnSpiral(t *testing.T) {
	out, err := layout.Eval(domain.Params{
		"curve": "spiral", "innerRadius": 10, "outerRadius": 120, "turns": 2,
		"orient": false,
	}, elements(1))
	require.NoError(t, err)
	require.Len(t, out, 1)
	// A single element sits at u=0 under start alignment.
	assert.InDelta(t, 10, center(out[0]).X, 1e-9)
}

func TestEval_UnknownCurve(t *testing.T) {
	_, err := layout.Eval(domain.Params{"curve": "helix"}, elements(1))
	assert.ErrorIs(t, err, domain.ErrParameter)
}

func TestEval_UnknownAlignment(t *testing.T) {
	_, err := layout.Eval(domain.Params{"curve": "line", "align": "justify"}, elements(1))
	assert.ErrorIs(t, err, domain.ErrParameter)
}
