package attractor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/attractor"
)

func TestEval_ByteIdenticalDeterminism(t *testing.T) {
	p := domain.Params{
		"type": "clifford", "a": -1.4, "b": 1.6, "c": 1.0, "d": 0.7,
		"iterations": 2000, "scale": 200,
	}
	first, err := attractor.Eval(p)
	require.NoError(t, err)
	second, err := attractor.Eval(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEval_AllFamilies(t *testing.T) {
	for _, family := range []string{"clifford", "dejong", "bedhead", "tinkerbell", "gumowski-mira"} {
		t.Run(family, func(t *testing.T) {
			out, err := attractor.Eval(domain.Params{
				"type": family, "iterations": 500, "scale": 100,
			})
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Greater(t, len(out[0]), 1)
			for _, pt := range out[0] {
				require.False(t, math.IsNaN(pt.X) || math.IsNaN(pt.Y))
			}
		})
	}
}

func TestEval_ScaledAndCentered(t *testing.T) {
	out, err := attractor.Eval(domain.Params{
		"type": "dejong", "a": 1.4, "b": -2.3, "c": 2.4, "d": -2.1,
		"iterations": 3000, "scale": 200, "cx": 50, "cy": -30,
	})
	require.NoError(t, err)
	min, max, ok := out.Bounds()
	require.True(t, ok)
	extent := math.Max(max.X-min.X, max.Y-min.Y)
	assert.InDelta(t, 200, extent, 1e-6)
	assert.InDelta(t, 50, (min.X+max.X)/2, 1e-6)
	assert.InDelta(t, -30, (min.Y+max.Y)/2, 1e-6)
}

func TestEval_UnknownFamily(t *testing.T) {
	_, err := attractor.Eval(domain.Params{"type": "lorenz"})
	assert.ErrorIs(t, err, domain.ErrParameter)
}

func TestEval_IterationsBelowOne(t *testing.T) {
	_, err := attractor.Eval(domain.Params{"iterations": 0})
	assert.ErrorIs(t, err, domain.ErrParameter)
}

func TestEval_DivergentOrbitTruncates(t *testing.T) {
	// Tinkerbell with large coefficients escapes immediately; the orbit is
	// cut short instead of erroring or emitting non-finite points.
	out, err := attractor.Eval(domain.Params{
		"type": "tinkerbell", "a": 100, "b": 100, "c": 100, "d": 100,
		"iterations": 5000,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Less(t, len(out[0]), 5000)
	for _, pt := range out[0] {
		require.False(t, math.IsNaN(pt.X) || math.IsNaN(pt.Y))
	}
}
