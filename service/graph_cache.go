package service

import (
	"context"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/analyzer"
)

// GraphCache memoizes project import graphs by root path for the lifetime
// of a single run. Callers must Clear it when the run ends so a later run
// never sees a stale graph.
type GraphCache struct {
	builder *analyzer.GraphBuilder
	graphs  map[string]*domain.ImportGraph
}

// NewGraphCache creates an empty GraphCache
func NewGraphCache() *GraphCache {
	return &GraphCache{
		builder: analyzer.NewGraphBuilder(),
		graphs:  make(map[string]*domain.ImportGraph),
	}
}

// Get returns the graph for the given project root, building it on first
// use. Repeated calls with the same root return the same graph.
func (c *GraphCache) Get(ctx context.Context, root string) (*domain.ImportGraph, error) {
	if graph, ok := c.graphs[root]; ok {
		return graph, nil
	}
	graph, err := c.builder.Build(ctx, root)
	if err != nil {
		return nil, err
	}
	c.graphs[root] = graph
	return graph, nil
}

// Size returns the number of cached graphs
func (c *GraphCache) Size() int {
	return len(c.graphs)
}

// Clear drops every cached graph
func (c *GraphCache) Clear() {
	c.graphs = make(map[string]*domain.ImportGraph)
}
