package analyzer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/extractor"
	"github.com/prescan-dev/prescan/internal/parser"
)

// sourceExtensions are the file extensions treated as project source
var sourceExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".mts": true, ".cts": true, ".mjs": true, ".cjs": true,
}

// skippedDirs are directory names never descended into while walking a
// project root
var skippedDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".git":         true,
}

// resolveExtensions is the probe order for extensionless relative imports
var resolveExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mts", ".cts", ".mjs", ".cjs"}

// GraphBuilder builds the whole-project import graph for a project root.
// The graph always covers every source file under the root, not just the
// scanned subset, because imports may cross the scan boundary.
type GraphBuilder struct {
	detector *CycleDetector
}

// NewGraphBuilder creates a new GraphBuilder
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{detector: NewCycleDetector()}
}

// Build walks the project root, parses every source file, resolves its
// imports, and returns the complete graph with cycles detected. Files that
// fail to read or parse contribute a node with no outgoing edges; the walk
// itself failing is the only fatal error.
func (b *GraphBuilder) Build(ctx context.Context, root string) (*domain.ImportGraph, error) {
	graph := domain.NewImportGraph(root)

	sources, err := collectSourceFiles(ctx, root)
	if err != nil {
		return nil, err
	}

	imports := make(map[string][]string, len(sources))
	for _, path := range sources {
		id := moduleID(root, path)
		graph.AddNode(&domain.ModuleNode{ID: id, FilePath: path})
		imports[id] = readImports(path)
	}

	for id, specs := range imports {
		for _, spec := range specs {
			target, external := b.resolveImport(graph, id, spec)
			if graph.GetNode(target) == nil {
				graph.AddNode(&domain.ModuleNode{ID: target, IsExternal: external})
			}
			graph.AddEdge(&domain.ImportEdge{From: id, To: target})
		}
	}

	graph.Cycles = b.detector.DetectCycles(graph)
	return graph, nil
}

// collectSourceFiles finds every source file under root, skipping
// dependency and output directories
func collectSourceFiles(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if skippedDirs[name] || (strings.HasPrefix(name, ".") && path != root) {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExtensions[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// readImports parses one file and returns its import specifiers. A file
// that cannot be read or parsed contributes no edges.
func readImports(path string) []string {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	ast, err := parser.ParseForLanguage(path, source)
	if err != nil || ast == nil {
		return nil
	}
	return extractor.ImportSources(ast)
}

// moduleID normalizes a file path to its graph ID: relative to the project
// root with forward slashes
func moduleID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// resolveImport maps an import specifier to a target module ID. Relative
// specifiers are resolved against the importer with extension and index
// probing; everything else (packages, builtins, aliases) is external.
func (b *GraphBuilder) resolveImport(graph *domain.ImportGraph, fromID, spec string) (string, bool) {
	if !strings.HasPrefix(spec, "./") && !strings.HasPrefix(spec, "../") && spec != "." && spec != ".." {
		return spec, true
	}

	resolved := filepath.ToSlash(filepath.Join(filepath.Dir(fromID), spec))

	if graph.GetNode(resolved) != nil {
		return resolved, false
	}
	for _, ext := range resolveExtensions {
		if candidate := resolved + ext; graph.GetNode(candidate) != nil {
			return candidate, false
		}
	}
	for _, ext := range resolveExtensions {
		if candidate := resolved + "/index" + ext; graph.GetNode(candidate) != nil {
			return candidate, false
		}
	}

	// Unresolved relative import: record as external so it never
	// participates in cycles or fan-in counts
	return resolved, true
}
