// Package app implements the application layer: rendering graph
// documents to SVG files and watching them for live re-renders.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/BauhouseConsortium/nirmanaflow/internal/adapters/watcher"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
	"github.com/BauhouseConsortium/nirmanaflow/internal/engine/eval"
)

// App wires the engine to its collaborators.
type App struct {
	loader  ports.GraphLoader
	writer  ports.PathWriter
	watcher ports.Watcher
	logger  ports.Logger
	engine  *eval.Engine
}

// New creates a new App instance. The engine's memo cache lives as long
// as the App, so watch-mode re-renders skip unchanged branches.
func New(loader ports.GraphLoader, writer ports.PathWriter, w ports.Watcher, log ports.Logger, runner ports.CodeRunner) *App {
	return &App{
		loader:  loader,
		writer:  writer,
		watcher: w,
		logger:  log,
		engine:  eval.New(eval.WithCodeRunner(runner), eval.WithLogger(log)),
	}
}

// RenderOptions control a render run.
type RenderOptions struct {
	// OutDir receives the rendered files; empty means next to each document.
	OutDir string
	// Width and Height override the document canvas when positive.
	Width  int
	Height int
}

// Render evaluates each document and writes its SVG. Documents render
// concurrently; the first hard failure cancels the rest. Node-local
// evaluation errors are logged and the surviving geometry is still
// written.
func (a *App) Render(ctx context.Context, docs []string, opts RenderOptions) error {
	if len(docs) == 0 {
		return zerr.New("no documents specified")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, doc := range docs {
		g.Go(func() error {
			return a.renderOne(ctx, doc, opts)
		})
	}
	return g.Wait()
}

func (a *App) renderOne(ctx context.Context, doc string, opts RenderOptions) error {
	start := time.Now()

	graph, assets, err := a.loader.Load(doc)
	if err != nil {
		return zerr.Wrap(err, fmt.Sprintf("loading %s", doc))
	}

	result, err := a.engine.Evaluate(ctx, graph, assets)
	if err != nil {
		return zerr.Wrap(err, fmt.Sprintf("evaluating %s", doc))
	}
	for id, msg := range result.Errors {
		a.logger.Warn(fmt.Sprintf("%s: node %s failed: %s", doc, id, msg))
	}

	width, height := canvasSize(graph)
	if opts.Width > 0 {
		width = opts.Width
	}
	if opts.Height > 0 {
		height = opts.Height
	}
	out := outputPath(doc, opts.OutDir)
	f, err := os.Create(out) // #nosec G304 -- derived from the user's document path
	if err != nil {
		return zerr.Wrap(err, "creating output file")
	}
	defer func() { _ = f.Close() }()

	if err := a.writer.Write(f, result.Paths, result.Colors, width, height); err != nil {
		return zerr.Wrap(err, "writing output")
	}

	a.logger.Info(fmt.Sprintf("%s: %d paths, %d points -> %s (%s)",
		doc, len(result.Paths), result.Paths.PointCount(), out, time.Since(start).Round(time.Millisecond)))
	return nil
}

// Watch renders the document, then re-renders on every (debounced)
// change to it or its sibling assets. Blocks until the context ends.
func (a *App) Watch(ctx context.Context, doc string, opts RenderOptions) error {
	if err := a.renderOne(ctx, doc, opts); err != nil {
		// A broken document on startup is not fatal in watch mode; the
		// user is about to edit it.
		a.logger.Error(err)
	}

	if a.watcher == nil {
		return zerr.New("no watcher configured")
	}
	if err := a.watcher.Start(ctx, doc); err != nil {
		return zerr.Wrap(err, "starting watcher")
	}
	defer func() { _ = a.watcher.Stop() }()

	deb := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Debug(fmt.Sprintf("change detected: %s", strings.Join(paths, ", ")))
		if err := a.renderOne(ctx, doc, opts); err != nil {
			a.logger.Error(err)
		}
	})

	for event := range a.watcher.Events() {
		deb.Add(event.Path)
	}
	deb.Flush()
	return ctx.Err()
}

// canvasSize reads the output node's dimensions, falling back to the
// loader defaults when the document has no output node.
func canvasSize(g *domain.Graph) (int, int) {
	if id, err := g.Output(); err == nil {
		if node, ok := g.Node(id); ok {
			return node.Params.Int("width", 800), node.Params.Int("height", 600)
		}
	}
	return 800, 600
}

// outputPath derives the .svg path for a document.
func outputPath(doc, outDir string) string {
	base := filepath.Base(doc)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base += ".svg"
	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(doc), base)
}
