package analyzer

import (
	"reflect"
	"testing"

	"github.com/prescan-dev/prescan/domain"
)

func buildGraph(edges [][2]string, external ...string) *domain.ImportGraph {
	graph := domain.NewImportGraph("/project")
	isExternal := make(map[string]bool)
	for _, id := range external {
		isExternal[id] = true
	}
	addNode := func(id string) {
		if graph.GetNode(id) == nil {
			graph.AddNode(&domain.ModuleNode{ID: id, IsExternal: isExternal[id]})
		}
	}
	for _, e := range edges {
		addNode(e[0])
		addNode(e[1])
		graph.AddEdge(&domain.ImportEdge{From: e[0], To: e[1]})
	}
	return graph
}

func TestDetectCycles(t *testing.T) {
	detector := NewCycleDetector()

	t.Run("acyclic graph has no cycles", func(t *testing.T) {
		graph := buildGraph([][2]string{
			{"a.js", "b.js"},
			{"b.js", "c.js"},
			{"a.js", "c.js"},
		})
		if cycles := detector.DetectCycles(graph); len(cycles) != 0 {
			t.Errorf("DetectCycles = %v, want none", cycles)
		}
	})

	t.Run("two-file cycle", func(t *testing.T) {
		graph := buildGraph([][2]string{
			{"a.js", "b.js"},
			{"b.js", "a.js"},
		})
		cycles := detector.DetectCycles(graph)
		want := [][]string{{"a.js", "b.js"}}
		if !reflect.DeepEqual(cycles, want) {
			t.Errorf("DetectCycles = %v, want %v", cycles, want)
		}
	})

	t.Run("three-file cycle with spur", func(t *testing.T) {
		graph := buildGraph([][2]string{
			{"a.js", "b.js"},
			{"b.js", "c.js"},
			{"c.js", "a.js"},
			{"c.js", "d.js"},
		})
		cycles := detector.DetectCycles(graph)
		want := [][]string{{"a.js", "b.js", "c.js"}}
		if !reflect.DeepEqual(cycles, want) {
			t.Errorf("DetectCycles = %v, want %v", cycles, want)
		}
	})

	t.Run("self-import is not a cycle", func(t *testing.T) {
		graph := buildGraph([][2]string{
			{"a.js", "a.js"},
		})
		if cycles := detector.DetectCycles(graph); len(cycles) != 0 {
			t.Errorf("DetectCycles = %v, want none", cycles)
		}
	})

	t.Run("external nodes are excluded", func(t *testing.T) {
		graph := buildGraph([][2]string{
			{"a.js", "react"},
			{"react", "a.js"},
		}, "react")
		if cycles := detector.DetectCycles(graph); len(cycles) != 0 {
			t.Errorf("DetectCycles = %v, want none (external node)", cycles)
		}
	})

	t.Run("disjoint cycles are sorted by first member", func(t *testing.T) {
		graph := buildGraph([][2]string{
			{"x.js", "y.js"},
			{"y.js", "x.js"},
			{"a.js", "b.js"},
			{"b.js", "a.js"},
		})
		cycles := detector.DetectCycles(graph)
		want := [][]string{{"a.js", "b.js"}, {"x.js", "y.js"}}
		if !reflect.DeepEqual(cycles, want) {
			t.Errorf("DetectCycles = %v, want %v", cycles, want)
		}
	})
}

func TestCycleMembers(t *testing.T) {
	graph := buildGraph([][2]string{
		{"a.js", "b.js"},
		{"b.js", "c.js"},
		{"c.js", "a.js"},
	})
	graph.Cycles = NewCycleDetector().DetectCycles(graph)

	members := graph.CycleMembers("b.js")
	want := []string{"a.js", "c.js"}
	if !reflect.DeepEqual(members, want) {
		t.Errorf("CycleMembers(b.js) = %v, want %v", members, want)
	}

	if members := graph.CycleMembers("missing.js"); members != nil {
		t.Errorf("CycleMembers(missing.js) = %v, want nil", members)
	}
}
