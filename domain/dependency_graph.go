package domain

// ModuleNode represents one file in the project import graph
type ModuleNode struct {
	// ID is the unique identifier (path normalized relative to the
	// project root, forward slashes)
	ID string `json:"id"`

	// FilePath is the absolute file path on disk (empty for external or
	// unresolved modules)
	FilePath string `json:"file_path"`

	// IsExternal indicates the module is not a project file
	// (npm package, Node builtin, or unresolved specifier)
	IsExternal bool `json:"is_external"`
}

// ImportEdge is a directed importer -> imported relationship
type ImportEdge struct {
	// From is the importing module ID
	From string `json:"from"`

	// To is the imported module ID
	To string `json:"to"`
}

// ImportGraph is the whole-project import graph, built at most once per
// project root per run. It covers every source file under the root, not
// just the scanned subset, because imports may cross the scan boundary.
type ImportGraph struct {
	// Root is the project root the graph was built from
	Root string `json:"root"`

	// Nodes maps module ID to its node
	Nodes map[string]*ModuleNode `json:"nodes"`

	// Edges maps importer ID to outgoing edges
	Edges map[string][]*ImportEdge `json:"edges"`

	// ReverseEdges maps imported ID to incoming edges (fan-in index)
	ReverseEdges map[string][]*ImportEdge `json:"-"`

	// Cycles are the strongly connected components with more than one
	// member, each sorted lexicographically
	Cycles [][]string `json:"cycles"`
}

// NewImportGraph creates an empty ImportGraph for the given root
func NewImportGraph(root string) *ImportGraph {
	return &ImportGraph{
		Root:         root,
		Nodes:        make(map[string]*ModuleNode),
		Edges:        make(map[string][]*ImportEdge),
		ReverseEdges: make(map[string][]*ImportEdge),
	}
}

// AddNode adds a node to the graph
func (g *ImportGraph) AddNode(node *ModuleNode) {
	if node == nil {
		return
	}
	g.Nodes[node.ID] = node
}

// AddEdge adds an edge and updates the reverse index
func (g *ImportGraph) AddEdge(edge *ImportEdge) {
	if edge == nil {
		return
	}
	g.Edges[edge.From] = append(g.Edges[edge.From], edge)
	g.ReverseEdges[edge.To] = append(g.ReverseEdges[edge.To], edge)
}

// GetNode returns a node by ID, nil when absent
func (g *ImportGraph) GetNode(id string) *ModuleNode {
	return g.Nodes[id]
}

// Outgoing returns all edges from a node
func (g *ImportGraph) Outgoing(id string) []*ImportEdge {
	return g.Edges[id]
}

// Incoming returns all edges pointing at a node
func (g *ImportGraph) Incoming(id string) []*ImportEdge {
	return g.ReverseEdges[id]
}

// NodeCount returns the number of nodes
func (g *ImportGraph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the total number of edges
func (g *ImportGraph) EdgeCount() int {
	count := 0
	for _, edges := range g.Edges {
		count += len(edges)
	}
	return count
}

// AllNodeIDs returns every node ID in the graph
func (g *ImportGraph) AllNodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	return ids
}

// CycleMembers returns the other members of every cycle containing the
// given module, deduplicated. Returns nil when the module is in no cycle.
func (g *ImportGraph) CycleMembers(id string) []string {
	var members []string
	seen := make(map[string]bool)
	for _, cycle := range g.Cycles {
		inCycle := false
		for _, m := range cycle {
			if m == id {
				inCycle = true
				break
			}
		}
		if !inCycle {
			continue
		}
		for _, m := range cycle {
			if m != id && !seen[m] {
				seen[m] = true
				members = append(members, m)
			}
		}
	}
	return members
}
