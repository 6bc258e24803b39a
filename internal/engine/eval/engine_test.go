package eval

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

type graphBuilder struct {
	t *testing.T
	g *domain.Graph
}

func build(t *testing.T) *graphBuilder {
	return &graphBuilder{t: t, g: domain.NewGraph()}
}

func (b *graphBuilder) node(id string, typ domain.NodeType, params domain.Params) *graphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.g.AddNode(&domain.Node{ID: domain.NewNodeID(id), Type: typ, Params: params}))
	return b
}

func (b *graphBuilder) well(id string, typ domain.NodeType, params domain.Params, well int) *graphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.g.AddNode(&domain.Node{ID: domain.NewNodeID(id), Type: typ, Params: params, Well: well}))
	return b
}

func (b *graphBuilder) edge(from, to string) *graphBuilder {
	return b.edgeTo(from, to, domain.PortDefault)
}

func (b *graphBuilder) edgeTo(from, to, port string) *graphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.g.AddEdge(domain.Edge{
		From: domain.NewNodeID(from), To: domain.NewNodeID(to), ToPort: port,
	}))
	return b
}

func id(s string) domain.NodeID { return domain.NewNodeID(s) }

func TestEvaluateCircleToOutput(t *testing.T) {
	b := build(t).
		node("c1", domain.TypeCircle, domain.Params{"radius": 50.0, "segments": 64}).
		node("out", domain.TypeOutput, nil).
		edge("c1", "out")

	res, err := New().Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Paths, 1)
	assert.Len(t, res.Paths[0], 65, "a circle with s segments has s+1 points")
}

func TestEvaluateRepeatMultiplies(t *testing.T) {
	b := build(t).
		node("r", domain.TypeRect, domain.Params{"width": 10.0, "height": 10.0}).
		node("rep", domain.TypeRepeat, domain.Params{"count": 7, "dx": 12.0}).
		node("out", domain.TypeOutput, nil).
		edge("r", "rep").edge("rep", "out")

	res, err := New().Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Len(t, res.Paths, 7, "repeat emits count copies of each input path")
}

func TestEvaluateCacheSkipsUnchangedNodes(t *testing.T) {
	b := build(t).
		node("c1", domain.TypeCircle, domain.Params{"radius": 40.0}).
		node("c2", domain.TypeCircle, domain.Params{"radius": 80.0}).
		node("out", domain.TypeOutput, nil).
		edge("c1", "out").edge("c2", "out")

	evals := map[string]int{}
	e := New(WithEvalHook(func(id domain.NodeID) { evals[id.String()]++ }))

	_, err := e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c1": 1, "c2": 1, "out": 1}, evals)

	// Second run with nothing changed: every node resolves from cache.
	_, err = e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c1": 1, "c2": 1, "out": 1}, evals)

	// Patching c1 re-runs c1 and the output, but not the untouched c2.
	_, err = e.Patch(context.Background(), b.g, id("c1"), "radius", 45.0, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c1": 2, "c2": 1, "out": 2}, evals)
}

func TestEvaluateCacheResetForcesReruns(t *testing.T) {
	b := build(t).
		node("c1", domain.TypeCircle, domain.Params{"radius": 40.0}).
		node("out", domain.TypeOutput, nil).
		edge("c1", "out")

	count := 0
	e := New(WithEvalHook(func(domain.NodeID) { count++ }))
	_, err := e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	assert.Equal(t, 2, e.CacheLen())

	e.ResetCache()
	_, err = e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestEvaluateCyclePartialFailure(t *testing.T) {
	b := build(t).
		node("a", domain.TypeTranslate, domain.Params{"dx": 1.0}).
		node("b", domain.TypeTranslate, domain.Params{"dx": 2.0}).
		node("c1", domain.TypeCircle, domain.Params{"radius": 30.0}).
		node("out", domain.TypeOutput, nil).
		edge("a", "b").edge("b", "a").
		edge("b", "out").edge("c1", "out")

	res, err := New().Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)

	// Both cycle members fail; the output depends on the cycle, so it
	// fails too, but the independent branch still evaluated.
	assert.Contains(t, res.Errors, id("a"))
	assert.Contains(t, res.Errors, id("b"))
	assert.Contains(t, res.Errors, id("out"))
	assert.NotContains(t, res.Errors, id("c1"))
	assert.NotEmpty(t, res.NodeOut[id("c1")])
	assert.Empty(t, res.Paths)
}

type stubRunner struct {
	err error
	out domain.PathSet
}

func (s *stubRunner) Run(_ context.Context, _ string, _ domain.PathSet, _ time.Duration) (domain.PathSet, error) {
	return s.out, s.err
}

func TestEvaluateCustomCodeFailureIsolated(t *testing.T) {
	b := build(t).
		node("cc", domain.TypeCustomCode, domain.Params{"code": "boom"}).
		node("c1", domain.TypeCircle, domain.Params{"radius": 20.0}).
		node("out", domain.TypeOutput, nil).
		edge("cc", "out").edge("c1", "out")

	e := New(WithCodeRunner(&stubRunner{err: domain.ErrRuntime}))
	res, err := e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)

	assert.Contains(t, res.Errors, id("cc"))
	assert.Contains(t, res.Errors, id("out"), "output depends on the failed node")
	assert.NotContains(t, res.Errors, id("c1"))
	assert.NotEmpty(t, res.NodeOut[id("c1")], "sibling branch still evaluates")
}

func TestEvaluateFailuresAreNotCached(t *testing.T) {
	b := build(t).
		node("cc", domain.TypeCustomCode, domain.Params{"code": "x"}).
		node("out", domain.TypeOutput, nil).
		edge("cc", "out")

	runner := &stubRunner{err: domain.ErrRuntime}
	count := 0
	e := New(
		WithCodeRunner(runner),
		WithEvalHook(func(nid domain.NodeID) {
			if nid == id("cc") {
				count++
			}
		}),
	)
	_, err := e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	_, err = e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "a failing node re-runs every evaluation")

	// Once fixed it succeeds and then memoizes.
	runner.err = nil
	runner.out = domain.PathSet{{{X: 0, Y: 0}, {X: 1, Y: 1}}}
	_, err = e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	_, err = e.Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestEvaluateWellTags(t *testing.T) {
	b := build(t).
		well("c1", domain.TypeCircle, domain.Params{"radius": 10.0}, 2).
		node("rep", domain.TypeRepeat, domain.Params{"count": 3}).
		node("out", domain.TypeOutput, nil).
		edge("c1", "rep").edge("rep", "out")

	res, err := New().Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	require.Len(t, res.Paths, 3)
	assert.Equal(t, []int{2, 2, 2}, res.Colors, "tags tile through repeat and survive the output")
}

func TestEvaluateWellOverride(t *testing.T) {
	b := build(t).
		well("c1", domain.TypeCircle, domain.Params{"radius": 10.0}, 1).
		well("tr", domain.TypeTranslate, domain.Params{"dx": 5.0}, 4).
		node("out", domain.TypeOutput, nil).
		edge("c1", "tr").edge("tr", "out")

	res, err := New().Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, res.Colors, "a node's own well overrides inherited tags")
}

func TestEvaluateMixedWellsCollapseToUntagged(t *testing.T) {
	b := build(t).
		well("c1", domain.TypeCircle, domain.Params{"radius": 10.0}, 1).
		well("c2", domain.TypeCircle, domain.Params{"radius": 20.0}, 2).
		node("cc", domain.TypeCustomCode, domain.Params{"code": "x"}).
		node("out", domain.TypeOutput, nil).
		edge("c1", "cc").edge("c2", "cc").edge("cc", "out")

	// The script collapses two inputs into three outputs; counts do not
	// line up and the input tags disagree, so the result is untagged.
	runner := &stubRunner{out: domain.PathSet{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 2}, {X: 1, Y: 2}},
	}}
	res, err := New(WithCodeRunner(runner)).Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, res.Colors)
}

func TestEvaluateMaskWithImageAsset(t *testing.T) {
	img := domain.NewRaster(2, 1)
	img.Lum[0] = 0
	img.Lum[1] = 1
	assets := &domain.Assets{Images: map[string]*domain.Raster{"photo.png": img}}

	b := build(t).
		node("img", domain.TypeImage, domain.Params{"source": "photo.png"}).
		node("ln", domain.TypeLine, domain.Params{"x1": 60.0, "y1": 50.0, "x2": 90.0, "y2": 50.0}).
		node("m", domain.TypeMask, domain.Params{"width": 100.0, "height": 100.0}).
		node("out", domain.TypeOutput, nil).
		edgeTo("ln", "m", domain.PortPaths).
		edgeTo("img", "m", domain.PortMask).
		edge("m", "out")

	res, err := New().Evaluate(context.Background(), b.g, assets)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	require.Len(t, res.Paths, 1, "the line lies over the bright half and survives")
}

func TestEvaluateImageAssetChangeInvalidatesCache(t *testing.T) {
	img := domain.NewRaster(2, 2)
	assets := &domain.Assets{Images: map[string]*domain.Raster{"a.png": img}}

	b := build(t).
		node("img", domain.TypeImage, domain.Params{"source": "a.png"}).
		node("ht", domain.TypeHalftone, domain.Params{"width": 40.0, "height": 40.0}).
		node("out", domain.TypeOutput, nil).
		edge("img", "ht").edge("ht", "out")

	count := 0
	e := New(WithEvalHook(func(nid domain.NodeID) {
		if nid == id("ht") {
			count++
		}
	}))
	_, err := e.Evaluate(context.Background(), b.g, assets)
	require.NoError(t, err)
	_, err = e.Evaluate(context.Background(), b.g, assets)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	img.Lum[0] = 0 // the asset changed on disk
	_, err = e.Evaluate(context.Background(), b.g, assets)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestEvaluateMissingAssetFailsNode(t *testing.T) {
	b := build(t).
		node("svg", domain.TypeSVGImport, domain.Params{"source": "missing.svg"}).
		node("out", domain.TypeOutput, nil).
		edge("svg", "out")

	res, err := New().Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	assert.Contains(t, res.Errors, id("svg"))
}

func TestEvaluateNoOutputNode(t *testing.T) {
	b := build(t).node("c1", domain.TypeCircle, domain.Params{"radius": 10.0})
	res, err := New().Evaluate(context.Background(), b.g, nil)
	assert.ErrorIs(t, err, domain.ErrNoOutputNode)
	require.NotNil(t, res)
	assert.NotEmpty(t, res.NodeOut[id("c1")], "nodes still evaluate for previews")
}

func TestEvaluateDropsDegeneratePaths(t *testing.T) {
	b := build(t).
		node("cc", domain.TypeCustomCode, domain.Params{"code": "x"}).
		node("out", domain.TypeOutput, nil).
		edge("cc", "out")

	runner := &stubRunner{out: domain.PathSet{
		{{X: 0, Y: 0}},               // single point, dropped
		{{X: 0, Y: 0}, {X: 5, Y: 5}}, // kept
		{},                           // empty, dropped
	}}
	res, err := New(WithCodeRunner(runner)).Evaluate(context.Background(), b.g, nil)
	require.NoError(t, err)
	require.Len(t, res.Paths, 1)
}

func TestEvaluateDeterministic(t *testing.T) {
	mk := func() *domain.Graph {
		return build(t).
			node("att", domain.TypeAttractor, domain.Params{"type": "clifford", "iterations": 500}).
			node("lsys", domain.TypeLSystem, domain.Params{"axiom": "F", "rules": "F=F+F-F", "iterations": 3}).
			node("out", domain.TypeOutput, nil).
			edge("att", "out").edge("lsys", "out").g
	}
	a, err := New().Evaluate(context.Background(), mk(), nil)
	require.NoError(t, err)
	b, err := New().Evaluate(context.Background(), mk(), nil)
	require.NoError(t, err)
	assert.Equal(t, a.Paths, b.Paths, "same graph, same geometry, every time")
}
