// Package eval schedules and runs the node graph. It owns the topological
// order, the partial-failure semantics, the memoization keys, and the
// color-well tag propagation; the per-node geometry lives in the gen,
// text and raster packages.
package eval

import (
	"context"
	"fmt"
	"time"

	"go.trai.ch/zerr"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
	"github.com/BauhouseConsortium/nirmanaflow/internal/engine/memo"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/attractor"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/bytebeat"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/iterate"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/layout"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/lsystem"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/shape"
	"github.com/BauhouseConsortium/nirmanaflow/internal/gen/xform"
	"github.com/BauhouseConsortium/nirmanaflow/internal/raster"
	"github.com/BauhouseConsortium/nirmanaflow/internal/text/aksara"
	"github.com/BauhouseConsortium/nirmanaflow/internal/text/strokefont"
)

// Result is one full evaluation of a graph.
type Result struct {
	// Paths and Colors are the output node's collected geometry and the
	// parallel color-well tags (0 means untagged).
	Paths  domain.PathSet
	Colors []int
	// Errors records node-local failures by id. A failed node contributes
	// an empty path set; unrelated branches are unaffected.
	Errors map[domain.NodeID]string
	// NodeOut holds every node's output for editor previews.
	NodeOut map[domain.NodeID]domain.PathSet
}

// Engine evaluates graphs. It is safe for sequential reuse; the memo
// cache persists across Evaluate calls until Reset.
type Engine struct {
	cache  *memo.Cache
	runner ports.CodeRunner
	log    ports.Logger
	hook   func(domain.NodeID)
}

type Option func(*Engine)

// WithCodeRunner installs the sandbox used by custom-code nodes.
func WithCodeRunner(r ports.CodeRunner) Option {
	return func(e *Engine) { e.runner = r }
}

// WithLogger installs the evaluation logger.
func WithLogger(l ports.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithEvalHook registers a callback fired on every actual (non-cached)
// node evaluation.
func WithEvalHook(fn func(domain.NodeID)) Option {
	return func(e *Engine) { e.hook = fn }
}

func New(opts ...Option) *Engine {
	e := &Engine{cache: memo.NewCache()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ResetCache drops all memoized outputs.
func (e *Engine) ResetCache() { e.cache.Reset() }

// CacheLen reports the number of memoized outputs.
func (e *Engine) CacheLen() int { return e.cache.Len() }

// nodeResult is the per-node state carried through one evaluation.
type nodeResult struct {
	paths  domain.PathSet
	wells  []int
	fp     uint64
	failed bool
}

// Evaluate runs the whole graph once. Node failures are collected in
// Result.Errors, not returned; the error return covers context
// cancellation and a missing output node.
func (e *Engine) Evaluate(ctx context.Context, g *domain.Graph, assets *domain.Assets) (*Result, error) {
	order, tainted := g.TopoOrder()
	results := make(map[domain.NodeID]*nodeResult, g.NodeCount())
	res := &Result{
		Errors:  map[domain.NodeID]string{},
		NodeOut: map[domain.NodeID]domain.PathSet{},
	}

	fail := func(id domain.NodeID, err error) {
		results[id] = &nodeResult{failed: true}
		res.Errors[id] = err.Error()
		res.NodeOut[id] = nil
		if e.log != nil {
			e.log.Error(zerr.With(err, "node", id.String()))
		}
	}

	for id := range tainted {
		fail(id, domain.ErrCycle)
	}

	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return res, zerr.Wrap(err, "evaluation canceled")
		}
		node, _ := g.Node(id)

		in, inWells, upstreamErr := e.collectInputs(g, id, results)
		if upstreamErr != nil {
			fail(id, upstreamErr)
			continue
		}

		nr, err := e.evalNode(ctx, g, node, assets, in, results)
		if err != nil {
			fail(id, err)
			continue
		}
		nr.wells = wellTags(node, nr.paths, in[domain.PortDefault], inWells)
		results[id] = nr
		res.NodeOut[id] = nr.paths
	}

	out, err := g.Output()
	if err != nil {
		return res, err
	}
	if nr := results[out]; nr != nil && !nr.failed {
		res.Paths = nr.paths
		res.Colors = nr.wells
	}
	return res, nil
}

// Patch applies one parameter change and re-evaluates. Untouched branches
// resolve from the cache.
func (e *Engine) Patch(ctx context.Context, g *domain.Graph, id domain.NodeID, field string, value any, assets *domain.Assets) (*Result, error) {
	if err := g.SetParam(id, field, value); err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, g, assets)
}

// collectInputs concatenates upstream outputs per port in edge order. An
// upstream failure poisons the node.
func (e *Engine) collectInputs(g *domain.Graph, id domain.NodeID, results map[domain.NodeID]*nodeResult) (map[string]domain.PathSet, []int, error) {
	in := make(map[string]domain.PathSet)
	var wells []int
	for port, ups := range g.Inputs(id) {
		for _, up := range ups {
			ur := results[up]
			if ur == nil || ur.failed {
				return nil, nil, zerr.With(zerr.Wrap(domain.ErrRuntime, "upstream node failed"), "upstream", up.String())
			}
			in[port] = append(in[port], ur.paths...)
			if port == domain.PortDefault || port == domain.PortPaths {
				wells = append(wells, ur.wells...)
			}
		}
	}
	return in, wells, nil
}

// defaultIn returns the node's primary input set. Mask nodes read it
// from the paths port, everything else from the default port.
func defaultIn(t domain.NodeType, in map[string]domain.PathSet) domain.PathSet {
	if t == domain.TypeMask {
		return in[domain.PortPaths]
	}
	return in[domain.PortDefault]
}

func (e *Engine) evalNode(ctx context.Context, g *domain.Graph, node *domain.Node, assets *domain.Assets, in map[string]domain.PathSet, results map[domain.NodeID]*nodeResult) (*nodeResult, error) {
	primary := defaultIn(node.Type, in)

	// Build the cache key: node identity, canonical params, and the output
	// fingerprints of everything feeding it (external assets included).
	byPort := make(map[string][]uint64, len(in))
	for port, ups := range g.Inputs(node.ID) {
		for _, up := range ups {
			byPort[port] = append(byPort[port], results[up].fp)
		}
	}
	if fp, err := e.assetFingerprint(g, node, assets); err != nil {
		return nil, err
	} else if fp != 0 {
		byPort["~source"] = []uint64{fp}
	}
	key := memo.Key{
		Node:   node.ID,
		Inputs: memo.InputsFingerprint(byPort),
		Params: memo.NodeFingerprint(string(node.Type), node.Params),
	}
	if paths, fp, ok := e.cache.Get(key); ok {
		return &nodeResult{paths: paths, fp: fp}, nil
	}

	if e.hook != nil {
		e.hook(node.ID)
	}
	out, err := e.dispatch(ctx, g, node, assets, in, primary)
	if err != nil {
		return nil, err
	}
	out = out.Compact()
	fp := memo.PathSetFingerprint(out)
	if node.Type == domain.TypeImage {
		// An image node emits no geometry; its fingerprint is the pixel
		// data so downstream converters re-run when the asset changes.
		fp = memo.RasterFingerprint(assets.Image(node.Params.String("source", "")))
	}
	e.cache.Put(key, out, fp)
	return &nodeResult{paths: out, fp: fp}, nil
}

// dispatch runs the per-type evaluator. The catalogue is closed; an
// unknown tag here means the graph bypassed AddNode validation.
func (e *Engine) dispatch(ctx context.Context, g *domain.Graph, node *domain.Node, assets *domain.Assets, in map[string]domain.PathSet, primary domain.PathSet) (domain.PathSet, error) {
	p := node.Params
	single := func(path domain.Path, err error) (domain.PathSet, error) {
		if err != nil {
			return nil, err
		}
		return domain.PathSet{path}, nil
	}

	switch node.Type {
	case domain.TypeLine:
		return single(shape.Line(p))
	case domain.TypeRect:
		return single(shape.Rect(p))
	case domain.TypeCircle:
		return single(shape.Circle(p))
	case domain.TypeEllipse:
		return single(shape.Ellipse(p))
	case domain.TypeArc:
		return single(shape.Arc(p))
	case domain.TypePolygon:
		return single(shape.Polygon(p))
	case domain.TypeText:
		return strokefont.Eval(p)
	case domain.TypeScriptText:
		return aksara.Eval(p)
	case domain.TypeRepeat:
		return iterate.Repeat(p, primary)
	case domain.TypeGrid:
		return iterate.Grid(p, primary)
	case domain.TypeRadial:
		return iterate.Radial(p, primary)
	case domain.TypeTranslate:
		return xform.Translate(p, primary)
	case domain.TypeRotate:
		return xform.Rotate(p, primary)
	case domain.TypeScale:
		return xform.Scale(p, primary)
	case domain.TypePathLayout:
		return layout.Eval(p, primary)
	case domain.TypeBytebeat:
		return bytebeat.Eval(p)
	case domain.TypeAttractor:
		return attractor.Eval(p)
	case domain.TypeLSystem:
		return lsystem.Eval(p)
	case domain.TypeCustomCode:
		if e.runner == nil {
			return nil, zerr.Wrap(domain.ErrRuntime, "no code runner configured")
		}
		timeout := time.Duration(p.Float("timeout", 0) * float64(time.Second))
		return e.runner.Run(ctx, p.String("code", ""), primary, timeout)
	case domain.TypeSVGImport:
		src := p.String("source", "")
		paths := assets.PathSet(src)
		if paths == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrAssetNotFound, "asset not loaded"), "source", src)
		}
		return paths.Clone(), nil
	case domain.TypeImage:
		src := p.String("source", "")
		if assets.Image(src) == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrAssetNotFound, "asset not loaded"), "source", src)
		}
		return nil, nil
	case domain.TypeHalftone:
		img, err := e.resolveRaster(g, node, assets)
		if err != nil {
			return nil, err
		}
		return raster.Halftone(p, img)
	case domain.TypeASCII:
		img, err := e.resolveRaster(g, node, assets)
		if err != nil {
			return nil, err
		}
		return raster.Ascii(p, img)
	case domain.TypeMask:
		img, err := e.resolveRaster(g, node, assets)
		if err != nil {
			return nil, err
		}
		return raster.Mask(p, primary, img, in[domain.PortMask])
	case domain.TypeOutput:
		return primary, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownNodeType, string(node.Type)), "node", node.ID.String())
	}
}

// resolveRaster finds the image feeding a converter: the node's own
// source parameter wins, otherwise the source of a directly connected
// image node. A converter with no image at all returns nil and lets the
// evaluator decide (mask falls back to polygon masking).
func (e *Engine) resolveRaster(g *domain.Graph, node *domain.Node, assets *domain.Assets) (*domain.Raster, error) {
	src := e.resolveSource(g, node)
	if src == "" {
		return nil, nil
	}
	img := assets.Image(src)
	if img == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrAssetNotFound, "asset not loaded"), "source", src)
	}
	return img, nil
}

func (e *Engine) resolveSource(g *domain.Graph, node *domain.Node) string {
	if src := node.Params.String("source", ""); src != "" {
		return src
	}
	for _, ups := range g.Inputs(node.ID) {
		for _, up := range ups {
			if u, ok := g.Node(up); ok && u.Type == domain.TypeImage {
				if src := u.Params.String("source", ""); src != "" {
					return src
				}
			}
		}
	}
	return ""
}

// assetFingerprint folds external asset content into the cache key for
// the node types that read assets.
func (e *Engine) assetFingerprint(g *domain.Graph, node *domain.Node, assets *domain.Assets) (uint64, error) {
	switch node.Type {
	case domain.TypeSVGImport:
		return memo.PathSetFingerprint(assets.PathSet(node.Params.String("source", ""))), nil
	case domain.TypeImage:
		return memo.RasterFingerprint(assets.Image(node.Params.String("source", ""))), nil
	case domain.TypeHalftone, domain.TypeASCII, domain.TypeMask:
		return memo.RasterFingerprint(assets.Image(e.resolveSource(g, node))), nil
	}
	return 0, nil
}

// wellTags computes the color tags for a node's output. An explicit well
// on the node overrides; otherwise tags flow through from the input when
// the path counts line up (equal or an exact multiple), and collapse to
// the uniform input tag when they do not.
func wellTags(node *domain.Node, out domain.PathSet, in domain.PathSet, inWells []int) []int {
	if len(out) == 0 {
		return nil
	}
	tags := make([]int, len(out))
	if node.Well != 0 {
		for i := range tags {
			tags[i] = node.Well
		}
		return tags
	}
	n := len(inWells)
	switch {
	case n == 0:
		// leave untagged
	case len(out) == n:
		copy(tags, inWells)
	case len(out)%n == 0:
		for i := range tags {
			tags[i] = inWells[i%n]
		}
	default:
		uniform := inWells[0]
		for _, w := range inWells[1:] {
			if w != uniform {
				return tags
			}
		}
		for i := range tags {
			tags[i] = uniform
		}
	}
	return tags
}

// String renders a compact evaluation summary for logs.
func (r *Result) String() string {
	return fmt.Sprintf("paths=%d points=%d errors=%d", len(r.Paths), r.Paths.PointCount(), len(r.Errors))
}
