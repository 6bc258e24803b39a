package iterate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/iterate"
)

var square = domain.PathSet{
	{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0}},
}

func TestRepeat_CountTimesInputs(t *testing.T) {
	in := domain.PathSet{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 2}, {X: 1, Y: 2}},
	}
	out, err := iterate.Repeat(domain.Params{"count": 7, "dx": 5}, in)
	require.NoError(t, err)
	assert.Len(t, out, 21)
}

func TestRepeat_InstanceMajorOrder(t *testing.T) {
	in := domain.PathSet{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: 5}, {X: 1, Y: 5}},
	}
	out, err := iterate.Repeat(domain.Params{"count": 2, "dx": 100}, in)
	require.NoError(t, err)
	require.Len(t, out, 4)
	// Instance 0: both inputs unmoved; instance 1: both shifted.
	assert.Equal(t, 0.0, out[0][0].X)
	assert.Equal(t, 5.0, out[1][0].Y)
	assert.Equal(t, 100.0, out[2][0].X)
	assert.Equal(t, 100.0, out[3][0].X)
}

func TestRepeat_AccumulatesStep(t *testing.T) {
	in := domain.PathSet{{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	out, err := iterate.Repeat(domain.Params{"count": 3, "dx": 10, "dy": 2}, in)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.InDelta(t, 20, out[2][0].X, 1e-9)
	assert.InDelta(t, 4, out[2][0].Y, 1e-9)
}

func TestRepeat_NegativeCount(t *testing.T) {
	_, err := iterate.Repeat(domain.Params{"count": -1}, square)
	assert.ErrorIs(t, err, domain.ErrParameter)
}

func TestRepeat_ZeroCountEmpty(t *testing.T) {
	out, err := iterate.Repeat(domain.Params{"count": 0}, square)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGrid_RowMajor(t *testing.T) {
	in := domain.PathSet{{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	out, err := iterate.Grid(domain.Params{
		"cols": 3, "rows": 2, "spacingX": 10, "spacingY": 20,
	}, in)
	require.NoError(t, err)
	require.Len(t, out, 6)
	// Second cell is one column over, fourth is the start of row two.
	assert.InDelta(t, 10, out[1][0].X, 1e-9)
	assert.InDelta(t, 0, out[1][0].Y, 1e-9)
	assert.InDelta(t, 0, out[3][0].X, 1e-9)
	assert.InDelta(t, 20, out[3][0].Y, 1e-9)
}

func TestRadial_EvenSpacing(t *testing.T) {
	in := domain.PathSet{{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	out, err := iterate.Radial(domain.Params{
		"count": 4, "radius": 100, "faceOut": false,
	}, in)
	require.NoError(t, err)
	require.Len(t, out, 4)
	angles := []float64{0, 90, 180, 270}
	for k, want := range angles {
		rad := want * math.Pi / 180
		assert.InDelta(t, 100*math.Cos(rad), out[k][0].X, 1e-9)
		assert.InDelta(t, 100*math.Sin(rad), out[k][0].Y, 1e-9)
	}
}

func TestRadial_FaceOutRotatesCopies(t *testing.T) {
	in := domain.PathSet{{{X: 0, Y: 0}, {X: 10, Y: 0}}}
	out, err := iterate.Radial(domain.Params{
		"count": 4, "radius": 100, "faceOut": true,
	}, in)
	require.NoError(t, err)
	require.Len(t, out, 4)
	// At 90 degrees the copy's local x axis points along +y.
	assert.InDelta(t, 0, out[1][1].X, 1e-9)
	assert.InDelta(t, 110, out[1][1].Y, 1e-9)
}
