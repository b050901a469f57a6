package analyzer

import (
	"sort"

	"github.com/prescan-dev/prescan/domain"
)

// CycleDetector finds import cycles using Tarjan's SCC algorithm
type CycleDetector struct {
	// Tarjan's algorithm state (reset on each detection)
	index    int
	stack    []string
	indices  map[string]int
	lowlinks map[string]int
	onStack  map[string]bool
	sccs     [][]string
}

// NewCycleDetector creates a new CycleDetector
func NewCycleDetector() *CycleDetector {
	return &CycleDetector{}
}

// DetectCycles finds every strongly connected component with more than one
// member in the graph. Each cycle is sorted lexicographically and the
// cycle list is sorted by first member, so output is deterministic.
// External nodes never participate in cycles.
func (d *CycleDetector) DetectCycles(graph *domain.ImportGraph) [][]string {
	if graph == nil || graph.NodeCount() == 0 {
		return nil
	}

	d.index = 0
	d.stack = d.stack[:0]
	d.indices = make(map[string]int)
	d.lowlinks = make(map[string]int)
	d.onStack = make(map[string]bool)
	d.sccs = nil

	nodeIDs := graph.AllNodeIDs()
	sort.Strings(nodeIDs) // deterministic traversal order

	for _, id := range nodeIDs {
		if graph.GetNode(id).IsExternal {
			continue
		}
		if _, visited := d.indices[id]; !visited {
			d.strongconnect(id, graph)
		}
	}

	var cycles [][]string
	for _, scc := range d.sccs {
		if len(scc) > 1 {
			sort.Strings(scc)
			cycles = append(cycles, scc)
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

// strongconnect is the recursive core of Tarjan's algorithm
func (d *CycleDetector) strongconnect(v string, graph *domain.ImportGraph) {
	d.indices[v] = d.index
	d.lowlinks[v] = d.index
	d.index++
	d.stack = append(d.stack, v)
	d.onStack[v] = true

	for _, edge := range graph.Outgoing(v) {
		w := edge.To
		node := graph.GetNode(w)
		if node == nil || node.IsExternal {
			continue
		}

		if _, visited := d.indices[w]; !visited {
			d.strongconnect(w, graph)
			d.lowlinks[v] = min(d.lowlinks[v], d.lowlinks[w])
		} else if d.onStack[w] {
			d.lowlinks[v] = min(d.lowlinks[v], d.indices[w])
		}
	}

	// v is the root of an SCC; pop the stack down to it
	if d.lowlinks[v] == d.indices[v] {
		var scc []string
		for {
			w := d.stack[len(d.stack)-1]
			d.stack = d.stack[:len(d.stack)-1]
			d.onStack[w] = false
			scc = append(scc, w)
			if w == v {
				break
			}
		}
		d.sccs = append(d.sccs, scc)
	}
}
