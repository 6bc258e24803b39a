package domain

import (
	"iter"
	"sort"

	"go.trai.ch/zerr"
)

// Graph is the node/edge structure owned by the external editor. It is
// mutated only between evaluation runs. Node insertion order is preserved
// so that edge resolution and tie-breaking stay deterministic.
type Graph struct {
	nodes map[NodeID]*Node
	order []NodeID
	edges []Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// AddNode adds a node to the graph. The id must be unused and the type tag
// must be part of the catalogue.
func (g *Graph) AddNode(n *Node) error {
	if !n.Type.Valid() {
		return zerr.With(zerr.Wrap(ErrUnknownNodeType, string(n.Type)), "node", n.ID.String())
	}
	if _, exists := g.nodes[n.ID]; exists {
		return zerr.With(zerr.Wrap(ErrNodeExists, "duplicate node id"), "node", n.ID.String())
	}
	if n.Type == TypeOutput {
		if _, err := g.Output(); err == nil {
			return zerr.With(zerr.Wrap(ErrDuplicateOutput, "graph already has an output node"), "node", n.ID.String())
		}
	}
	if n.Params == nil {
		n.Params = make(Params)
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge connects two existing nodes. The target port must be declared by
// the target node's type; the empty port is always accepted as the default.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return zerr.With(zerr.Wrap(ErrNodeNotFound, "edge source"), "node", e.From.String())
	}
	to, ok := g.nodes[e.To]
	if !ok {
		return zerr.With(zerr.Wrap(ErrNodeNotFound, "edge target"), "node", e.To.String())
	}
	if !to.Type.AcceptsPort(e.ToPort) {
		return zerr.With(zerr.With(zerr.Wrap(ErrUnknownPort, "not declared by target type"), "node", e.To.String()), "port", e.ToPort)
	}
	g.edges = append(g.edges, e)
	return nil
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Nodes yields nodes in insertion order.
func (g *Graph) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, id := range g.order {
			if !yield(g.nodes[id]) {
				return
			}
		}
	}
}

// Edges returns the edge list in declaration order. Callers must not
// mutate the returned slice.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// SetParam replaces exactly one field of one node's parameter record. This
// is the mutation protocol entry point: the editor sends discrete
// (nodeId, field, value) patches and never restructures a node's type.
func (g *Graph) SetParam(id NodeID, field string, value any) error {
	n, ok := g.nodes[id]
	if !ok {
		return zerr.With(zerr.Wrap(ErrNodeNotFound, "patch target"), "node", id.String())
	}
	n.Params.Set(field, value)
	return nil
}

// Output locates the single output node.
func (g *Graph) Output() (NodeID, error) {
	for _, id := range g.order {
		if g.nodes[id].Type == TypeOutput {
			return id, nil
		}
	}
	return NodeID{}, ErrNoOutputNode
}

// Inputs returns, for each input port of the node, the upstream node ids
// feeding it in edge-declaration order. An edge with an empty target port
// resolves to the type's first declared port.
func (g *Graph) Inputs(id NodeID) map[string][]NodeID {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	ports := n.Type.InputPorts()
	in := make(map[string][]NodeID, len(ports))
	for _, p := range ports {
		in[p] = nil
	}
	for _, e := range g.edges {
		if e.To != id {
			continue
		}
		port := e.ToPort
		if port == PortDefault {
			port = ports[0]
		}
		in[port] = append(in[port], e.From)
	}
	return in
}

// TopoOrder computes a Kahn topological order over the whole graph with a
// deterministic node-id tie-break. Nodes that never reach in-degree zero
// are on a cycle or downstream of one; they are returned in the tainted
// set instead of the order, so that unrelated branches still evaluate.
func (g *Graph) TopoOrder() (order []NodeID, tainted map[NodeID]bool) {
	inDegree := make(map[NodeID]int, len(g.nodes))
	dependents := make(map[NodeID][]NodeID, len(g.nodes))
	for _, id := range g.order {
		inDegree[id] = 0
	}
	for _, e := range g.edges {
		inDegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	var ready []NodeID
	for _, id := range g.order {
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}
	sortIDs(ready)

	order = make([]NodeID, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var freed []NodeID
		for _, dep := range dependents[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				freed = append(freed, dep)
			}
		}
		sortIDs(freed)
		ready = append(ready, freed...)
	}

	if len(order) < len(g.nodes) {
		tainted = make(map[NodeID]bool, len(g.nodes)-len(order))
		for _, id := range g.order {
			if inDegree[id] > 0 {
				tainted[id] = true
			}
		}
	}
	return order, tainted
}

func sortIDs(ids []NodeID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
