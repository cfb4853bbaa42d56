package deps

// Graph is a dependency graph with insertion-ordered nodes and deduplicated
// directed edges. It is not safe for concurrent mutation.
type Graph struct {
	nodes map[string]*Node
	order []string
	edges []Edge
	seen  map[Edge]bool
}

// Node is a package in the graph.
type Node struct {
	Name string
	Meta map[string]any
}

// Edge is a directed dependency: From depends on To.
type Edge struct {
	From string
	To   string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		seen:  make(map[Edge]bool),
	}
}

// AddNode inserts a node if absent and returns it. When the node already
// exists, non-nil metadata replaces what was stored.
func (g *Graph) AddNode(name string, meta map[string]any) *Node {
	if n, ok := g.nodes[name]; ok {
		if meta != nil {
			n.Meta = meta
		}
		return n
	}
	n := &Node{Name: name, Meta: meta}
	g.nodes[name] = n
	g.order = append(g.order, name)
	return n
}

// AddEdge inserts a directed edge, ignoring duplicates and self-loops.
// Both endpoints are created if missing.
func (g *Graph) AddEdge(from, to string) {
	if from == to {
		return
	}
	e := Edge{From: from, To: to}
	if g.seen[e] {
		return
	}
	g.AddNode(from, nil)
	g.AddNode(to, nil)
	g.seen[e] = true
	g.edges = append(g.edges, e)
}

// Node returns the named node, if present.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.nodes[name])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
