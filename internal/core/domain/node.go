package domain

import "unique"

// NodeID is an interned node identifier. It is a value object wrapping a
// unique.Handle so that comparisons and map keys stay cheap for the
// frequently repeated ids flowing through the evaluator and cache.
type NodeID struct {
	h unique.Handle[string]
}

// NewNodeID creates an interned NodeID from a string.
func NewNodeID(s string) NodeID {
	return NodeID{h: unique.Make(s)}
}

// String returns the underlying id string.
func (id NodeID) String() string {
	return id.h.Value()
}

// MarshalText implements encoding.TextMarshaler.
func (id NodeID) MarshalText() ([]byte, error) {
	return []byte(id.h.Value()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(text []byte) error {
	id.h = unique.Make(string(text))
	return nil
}

// NodeType tags a node with its evaluator. The catalogue is closed: the
// evaluator dispatches over it with an exhaustive switch and rejects
// anything else with ErrUnknownNodeType.
type NodeType string

const (
	TypeLine       NodeType = "line"
	TypeRect       NodeType = "rect"
	TypeCircle     NodeType = "circle"
	TypeEllipse    NodeType = "ellipse"
	TypeArc        NodeType = "arc"
	TypePolygon    NodeType = "polygon"
	TypeText       NodeType = "text"
	TypeScriptText NodeType = "script-text"
	TypeRepeat     NodeType = "repeat"
	TypeGrid       NodeType = "grid"
	TypeRadial     NodeType = "radial"
	TypeTranslate  NodeType = "translate"
	TypeRotate     NodeType = "rotate"
	TypeScale      NodeType = "scale"
	TypePathLayout NodeType = "path-layout"
	TypeBytebeat   NodeType = "bytebeat"
	TypeAttractor  NodeType = "attractor"
	TypeLSystem    NodeType = "l-system"
	TypeCustomCode NodeType = "custom-code"
	TypeSVGImport  NodeType = "svg-import"
	TypeImage      NodeType = "image-import"
	TypeHalftone   NodeType = "halftone"
	TypeASCII      NodeType = "ascii"
	TypeMask       NodeType = "mask"
	TypeOutput     NodeType = "output"
)

// nodeTypes is the closed catalogue used for validation.
var nodeTypes = map[NodeType]bool{
	TypeLine: true, TypeRect: true, TypeCircle: true, TypeEllipse: true,
	TypeArc: true, TypePolygon: true, TypeText: true, TypeScriptText: true,
	TypeRepeat: true, TypeGrid: true, TypeRadial: true, TypeTranslate: true,
	TypeRotate: true, TypeScale: true, TypePathLayout: true, TypeBytebeat: true,
	TypeAttractor: true, TypeLSystem: true, TypeCustomCode: true,
	TypeSVGImport: true, TypeImage: true, TypeHalftone: true, TypeASCII: true,
	TypeMask: true, TypeOutput: true,
}

// Valid reports whether the type tag is part of the catalogue.
func (t NodeType) Valid() bool {
	return nodeTypes[t]
}

// Input port names. Every node reads the default port except mask, which
// distinguishes the paths being masked from the mask geometry.
const (
	PortDefault = ""
	PortPaths   = "paths"
	PortMask    = "mask"
)

// InputPorts returns the named input ports accepted by the type.
func (t NodeType) InputPorts() []string {
	if t == TypeMask {
		return []string{PortPaths, PortMask}
	}
	return []string{PortDefault}
}

// AcceptsPort reports whether port is a legal input port for the type.
// The empty port maps to the first declared port.
func (t NodeType) AcceptsPort(port string) bool {
	if port == PortDefault {
		return true
	}
	for _, p := range t.InputPorts() {
		if p == port {
			return true
		}
	}
	return false
}

// Node is a typed vertex of the graph. Well is the optional color-well
// index (1-4) used only for downstream styling; zero means untagged.
type Node struct {
	ID     NodeID
	Type   NodeType
	Params Params
	Well   int
}

// Edge connects the output of From to an input port of To. Empty ports mean
// the default port on either side.
type Edge struct {
	From     NodeID
	FromPort string
	To       NodeID
	ToPort   string
}
