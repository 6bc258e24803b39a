package domain

import "go.trai.ch/zerr"

var (
	// ErrParse is returned for malformed bytebeat expressions, L-system
	// rule strings, or custom code that fails to compile.
	ErrParse = zerr.New("parse error")

	// ErrCycle is recorded on every node on or downstream of a dependency
	// cycle reachable during a run.
	ErrCycle = zerr.New("dependency cycle")

	// ErrRuntime is returned when custom code panics or returns a value
	// that is not a path set.
	ErrRuntime = zerr.New("runtime error")

	// ErrParameter is returned for an out-of-range or missing required
	// parameter field.
	ErrParameter = zerr.New("invalid parameter")

	// ErrTimeout is returned when custom code exceeds its time budget.
	ErrTimeout = zerr.New("execution timed out")

	// ErrNodeExists is returned when adding a node whose id is taken.
	ErrNodeExists = zerr.New("node already exists")

	// ErrNodeNotFound is returned when an edge or patch references an
	// unknown node id.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrUnknownNodeType is returned for a type tag outside the catalogue.
	ErrUnknownNodeType = zerr.New("unknown node type")

	// ErrUnknownPort is returned when an edge targets a port the node's
	// type does not declare.
	ErrUnknownPort = zerr.New("unknown input port")

	// ErrNoOutputNode is returned when a graph has no output node to
	// evaluate toward.
	ErrNoOutputNode = zerr.New("graph has no output node")

	// ErrDuplicateOutput is returned when a graph declares more than one
	// output node.
	ErrDuplicateOutput = zerr.New("graph has more than one output node")

	// ErrAssetNotFound is returned when a source parameter references an
	// asset the collaborator did not supply.
	ErrAssetNotFound = zerr.New("asset not found")

	// ErrDocumentReadFailed is returned when a graph document cannot be
	// read from disk.
	ErrDocumentReadFailed = zerr.New("failed to read graph document")

	// ErrDocumentParseFailed is returned when a graph document cannot be
	// parsed.
	ErrDocumentParseFailed = zerr.New("failed to parse graph document")

	// ErrImageDecodeFailed is returned when a referenced image cannot be
	// decoded.
	ErrImageDecodeFailed = zerr.New("failed to decode image")
)
