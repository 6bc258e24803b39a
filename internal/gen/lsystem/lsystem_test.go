package lsystem_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/lsystem"
)

func TestParseRules(t *testing.T) {
	rules, err := lsystem.ParseRules("F=FF+[+F-F]; X = F[X] ;")
	require.NoError(t, err)
	assert.Equal(t, "FF+[+F-F]", rules['F'])
	assert.Equal(t, "F[X]", rules['X'])
}

func TestParseRules_Errors(t *testing.T) {
	_, err := lsystem.ParseRules("FFF")
	assert.ErrorIs(t, err, domain.ErrParse)

	_, err = lsystem.ParseRules("FX=F")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestRewrite(t *testing.T) {
	rules := map[rune]string{'F': "F+F"}
	out, err := lsystem.Rewrite("F", rules, 3)
	require.NoError(t, err)
	assert.Equal(t, "F+F+F+F+F+F+F+F", out)
}

func TestRewrite_CopiesUnknownThrough(t *testing.T) {
	out, err := lsystem.Rewrite("A-B", map[rune]string{'A': "AB"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "ABB-B", out)
}

func TestRewrite_GrowthCap(t *testing.T) {
	rules := map[rune]string{'F': strings.Repeat("F", 16)}
	_, err := lsystem.Rewrite("F", rules, 8)
	assert.ErrorIs(t, err, domain.ErrParameter)
}

func TestEval_SquarePath(t *testing.T) {
	out, err := lsystem.Eval(domain.Params{
		"axiom": "F+F+F+F", "iterations": 0,
		"angle": 90, "step": 10, "startAngle": 0,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Len(t, out[0], 5)
	assert.InDelta(t, 0, out[0][4].X, 1e-9)
	assert.InDelta(t, 0, out[0][4].Y, 1e-9)
}

func TestEval_LowercaseMovesWithoutDrawing(t *testing.T) {
	out, err := lsystem.Eval(domain.Params{
		"axiom": "FfF", "iterations": 0, "step": 10, "startAngle": 0,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.InDelta(t, 20, out[1][0].X, 1e-9)
}

func TestEval_BracketsRestoreState(t *testing.T) {
	out, err := lsystem.Eval(domain.Params{
		"axiom": "F[+F]F", "iterations": 0,
		"angle": 90, "step": 10, "startAngle": 0,
	})
	require.NoError(t, err)
	// Branch is its own path; the trunk continues from the pre-branch state.
	require.Len(t, out, 2)
	last := out[1][len(out[1])-1]
	assert.InDelta(t, 20, last.X, 1e-9)
	assert.InDelta(t, 0, last.Y, 1e-9)
}

func TestEval_UnbalancedBracket(t *testing.T) {
	_, err := lsystem.Eval(domain.Params{"axiom": "F]F", "iterations": 0})
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestEval_ScalePerIterShrinksStep(t *testing.T) {
	out, err := lsystem.Eval(domain.Params{
		"axiom": "F", "rules": "F=F", "iterations": 2,
		"step": 10, "scalePerIter": 0.5, "startAngle": 0,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.InDelta(t, 2.5, out[0][1].X, 1e-9)
}

func TestEval_EmptyAxiom(t *testing.T) {
	_, err := lsystem.Eval(domain.Params{"axiom": ""})
	assert.ErrorIs(t, err, domain.ErrParameter)
}
