// Package graphfile loads YAML graph documents and the external assets
// they reference.
package graphfile

import (
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
)

const (
	// DefaultCanvasWidth and DefaultCanvasHeight apply when the document
	// omits the canvas section.
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600

	// maxImageDim bounds decoded image size; the converters sample
	// luminance, so full resolution buys nothing.
	maxImageDim = 1024
)

// Loader implements ports.GraphLoader for YAML documents. Image assets
// are decoded through the injected decoder; SVG assets are parsed into
// path sets directly.
type Loader struct {
	Decoder ports.ImageDecoder
	Logger  ports.Logger
}

var _ ports.GraphLoader = (*Loader)(nil)

// Load reads the document, builds the validated graph, and loads every
// asset the nodes reference. A missing or unreadable asset is a warning
// here; the referencing node fails at evaluation time, not the document.
func (l *Loader) Load(path string) (*domain.Graph, *domain.Assets, error) {
	var doc Document
	if err := readAndUnmarshalYAML(path, &doc); err != nil {
		return nil, nil, err
	}

	if doc.Canvas.Width <= 0 {
		doc.Canvas.Width = DefaultCanvasWidth
	}
	if doc.Canvas.Height <= 0 {
		doc.Canvas.Height = DefaultCanvasHeight
	}

	g := domain.NewGraph()
	for _, dto := range doc.Nodes {
		node := &domain.Node{
			ID:     domain.NewNodeID(dto.ID),
			Type:   domain.NodeType(dto.Type),
			Params: domain.Params(dto.Params),
			Well:   dto.Well,
		}
		if node.Type == domain.TypeOutput {
			if node.Params == nil {
				node.Params = domain.Params{}
			}
			if !node.Params.Has("width") {
				node.Params.Set("width", doc.Canvas.Width)
			}
			if !node.Params.Has("height") {
				node.Params.Set("height", doc.Canvas.Height)
			}
		}
		if err := g.AddNode(node); err != nil {
			return nil, nil, err
		}
	}
	for _, dto := range doc.Edges {
		edge := domain.Edge{
			From:   domain.NewNodeID(dto.From),
			To:     domain.NewNodeID(dto.To),
			ToPort: dto.Port,
		}
		if err := g.AddEdge(edge); err != nil {
			return nil, nil, err
		}
	}

	assets := l.loadAssets(g, filepath.Dir(path))
	return g, assets, nil
}

// loadAssets scans source parameters and loads what it can find.
func (l *Loader) loadAssets(g *domain.Graph, baseDir string) *domain.Assets {
	assets := &domain.Assets{
		Images: map[string]*domain.Raster{},
		Paths:  map[string]domain.PathSet{},
	}
	for node := range g.Nodes() {
		src := node.Params.String("source", "")
		if src == "" {
			continue
		}
		full := src
		if !filepath.IsAbs(full) {
			full = filepath.Join(baseDir, src)
		}
		switch node.Type {
		case domain.TypeImage, domain.TypeHalftone, domain.TypeASCII, domain.TypeMask:
			if _, done := assets.Images[src]; done {
				continue
			}
			if l.Decoder == nil {
				continue
			}
			img, err := l.Decoder.Decode(full, maxImageDim)
			if err != nil {
				l.warn(fmt.Sprintf("image asset %q: %v", src, err))
				continue
			}
			assets.Images[src] = img
		case domain.TypeSVGImport:
			if _, done := assets.Paths[src]; done {
				continue
			}
			data, err := os.ReadFile(full) // #nosec G304 -- path comes from the user's document
			if err != nil {
				l.warn(fmt.Sprintf("svg asset %q: %v", src, err))
				continue
			}
			paths, err := ParseSVG(data)
			if err != nil {
				l.warn(fmt.Sprintf("svg asset %q: %v", src, err))
				continue
			}
			assets.Paths[src] = paths
		}
	}
	return assets
}

func (l *Loader) warn(msg string) {
	if l.Logger != nil {
		l.Logger.Warn(msg)
	}
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDocumentReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrDocumentParseFailed.Error())
	}

	return nil
}
