package graphfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadBasicDocument(t *testing.T) {
	doc := `
version: "1"
canvas:
  width: 420
  height: 297
nodes:
  - id: c1
    type: circle
    well: 2
    params:
      radius: 50
      segments: 32
  - id: out
    type: output
edges:
  - from: c1
    to: out
`
	path := writeDoc(t, t.TempDir(), "sketch.yaml", doc)

	g, assets, err := (&Loader{}).Load(path)
	require.NoError(t, err)
	require.NotNil(t, assets)
	assert.Equal(t, 2, g.NodeCount())

	c1, ok := g.Node(domain.NewNodeID("c1"))
	require.True(t, ok)
	assert.Equal(t, domain.TypeCircle, c1.Type)
	assert.Equal(t, 2, c1.Well)
	assert.InDelta(t, 50.0, c1.Params.Float("radius", 0), 1e-9)

	// Canvas dimensions land on the output node's params.
	out, ok := g.Node(domain.NewNodeID("out"))
	require.True(t, ok)
	assert.Equal(t, 420, out.Params.Int("width", 0))
	assert.Equal(t, 297, out.Params.Int("height", 0))

	assert.Len(t, g.Edges(), 1)
}

func TestLoadDefaultCanvas(t *testing.T) {
	doc := `
nodes:
  - id: out
    type: output
`
	path := writeDoc(t, t.TempDir(), "sketch.yaml", doc)
	g, _, err := (&Loader{}).Load(path)
	require.NoError(t, err)

	out, _ := g.Node(domain.NewNodeID("out"))
	assert.Equal(t, DefaultCanvasWidth, out.Params.Int("width", 0))
	assert.Equal(t, DefaultCanvasHeight, out.Params.Int("height", 0))
}

func TestLoadRejectsUnknownNodeType(t *testing.T) {
	doc := `
nodes:
  - id: x
    type: teleport
`
	path := writeDoc(t, t.TempDir(), "sketch.yaml", doc)
	_, _, err := (&Loader{}).Load(path)
	assert.ErrorIs(t, err, domain.ErrUnknownNodeType)
}

func TestLoadRejectsEdgeToMissingNode(t *testing.T) {
	doc := `
nodes:
  - id: c1
    type: circle
edges:
  - from: c1
    to: ghost
`
	path := writeDoc(t, t.TempDir(), "sketch.yaml", doc)
	_, _, err := (&Loader{}).Load(path)
	assert.ErrorIs(t, err, domain.ErrNodeNotFound)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeDoc(t, t.TempDir(), "sketch.yaml", "nodes: [unclosed")
	_, _, err := (&Loader{}).Load(path)
	assert.ErrorContains(t, err, domain.ErrDocumentParseFailed.Error())
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := (&Loader{}).Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, domain.ErrDocumentReadFailed.Error())
}

func TestLoadSVGAsset(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "logo.svg",
		`<svg xmlns="http://www.w3.org/2000/svg"><polyline points="0,0 10,0 10,10"/></svg>`)
	doc := `
nodes:
  - id: svg
    type: svg-import
    params:
      source: logo.svg
  - id: out
    type: output
edges:
  - from: svg
    to: out
`
	path := writeDoc(t, dir, "sketch.yaml", doc)
	_, assets, err := (&Loader{}).Load(path)
	require.NoError(t, err)

	paths := assets.PathSet("logo.svg")
	require.Len(t, paths, 1)
	assert.Len(t, paths[0], 3)
}

func TestLoadMissingAssetIsNotFatal(t *testing.T) {
	doc := `
nodes:
  - id: svg
    type: svg-import
    params:
      source: missing.svg
  - id: out
    type: output
`
	path := writeDoc(t, t.TempDir(), "sketch.yaml", doc)
	_, assets, err := (&Loader{}).Load(path)
	require.NoError(t, err, "a missing asset fails the node at evaluation, not the document")
	assert.Nil(t, assets.PathSet("missing.svg"))
}
