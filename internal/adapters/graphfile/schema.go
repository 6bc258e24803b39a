package graphfile

// Document is the on-disk YAML form of a node graph.
type Document struct {
	Version string    `yaml:"version"`
	Canvas  CanvasDTO `yaml:"canvas"`
	Nodes   []NodeDTO `yaml:"nodes"`
	Edges   []EdgeDTO `yaml:"edges"`
}

// CanvasDTO sets the output dimensions in document units.
type CanvasDTO struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// NodeDTO is one node entry. Params are free-form per node type; the
// evaluator applies its own defaults for anything omitted.
type NodeDTO struct {
	ID     string         `yaml:"id"`
	Type   string         `yaml:"type"`
	Well   int            `yaml:"well"`
	Params map[string]any `yaml:"params"`
}

// EdgeDTO connects two node ids. Port selects the target input port;
// empty means the default port.
type EdgeDTO struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Port string `yaml:"port"`
}
