// Package extractor turns parsed source files into the flat FileFacts
// record every downstream stage consumes.
package extractor

import (
	"strings"

	"github.com/prescan-dev/prescan/domain"
	"github.com/prescan-dev/prescan/internal/parser"
)

// Extractor computes FileFacts from a parsed AST
type Extractor struct {
	// ProjectRoot anchors test-file discovery; empty disables the
	// project-root mirrored-directory checks
	ProjectRoot string
}

// New creates an Extractor rooted at the given project root
func New(projectRoot string) *Extractor {
	return &Extractor{ProjectRoot: projectRoot}
}

// UnreadableFacts returns the degraded facts for a file that could not be
// read. Such files take a zero-score fast path and skip further processing.
func UnreadableFacts(path string) domain.FileFacts {
	return domain.FileFacts{Path: path, Unreadable: true}
}

// Extract computes the complete facts for one file. Facts are computed
// exactly once per file per run; callers must not re-extract.
func (e *Extractor) Extract(path string, source []byte, ast *parser.Node) domain.FileFacts {
	facts := domain.FileFacts{Path: path}

	if strings.TrimSpace(string(source)) == "" {
		// Whitespace-only file: empty facts, every axis will score 100
		facts.HasTestFile, facts.TestAssertionCount = e.discoverTests(path)
		return facts
	}

	facts.TotalLines = countLines(source)

	if ast != nil {
		facts.CommentLines = ast.CommentLines
		facts.Functions = collectFunctions(ast)
		facts.ImportSources = ImportSources(ast)
		facts.ImportCount = len(facts.ImportSources)
		facts.GlobalMutations = collectGlobalMutations(ast)
		if parser.IsTypeScriptFile(path) {
			facts.MissingReturnTypes = countMissingReturnTypes(ast)
		}
	}

	facts.HasTestFile, facts.TestAssertionCount = e.discoverTests(path)
	return facts
}

func (e *Extractor) discoverTests(path string) (bool, int) {
	testPath := FindTestFile(path, e.ProjectRoot)
	if testPath == "" {
		return false, 0
	}
	return true, CountAssertions(testPath)
}

func countLines(source []byte) int {
	n := 1
	for _, b := range source {
		if b == '\n' {
			n++
		}
	}
	// A trailing newline does not start a new line
	if len(source) > 0 && source[len(source)-1] == '\n' {
		n--
	}
	return n
}

// collectFunctions gathers every function-like declaration with its span.
// A function expression assigned to a variable is reported under the
// variable's name rather than as an anonymous span.
func collectFunctions(ast *parser.Node) []domain.FunctionSpan {
	var spans []domain.FunctionSpan
	named := make(map[*parser.Node]string)

	// First pass: remember declarator-bound function values
	ast.Walk(func(n *parser.Node) bool {
		if n.Type == parser.NodeVariableDeclarator && n.Init != nil && n.Init.IsFunction() {
			named[n.Init] = n.Name
		}
		return true
	})

	ast.Walk(func(n *parser.Node) bool {
		if !n.IsFunction() {
			return true
		}
		name := n.Name
		if name == "" {
			if bound, ok := named[n]; ok {
				name = bound
			} else {
				name = "<anonymous>"
			}
		}
		spans = append(spans, domain.FunctionSpan{
			Name:      name,
			LineCount: n.LineSpan(),
			StartLine: n.Location.StartLine,
		})
		return true
	})
	return spans
}

// ImportSources gathers every distinct import specifier in the AST: ES
// import declarations, re-export sources, require() calls, and dynamic
// import(). The graph builder shares this so both stages see the same
// dependency set.
func ImportSources(ast *parser.Node) []string {
	var sources []string
	seen := make(map[string]bool)

	add := func(source string) {
		if source != "" && !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}

	ast.Walk(func(n *parser.Node) bool {
		switch n.Type {
		case parser.NodeImportDeclaration:
			add(n.Source)
		case parser.NodeExportDeclaration:
			if n.Source != "" {
				add(n.Source)
			}
		case parser.NodeCallExpression:
			if src, ok := importCallSource(n); ok {
				add(src)
			}
		}
		return true
	})
	return sources
}

// importCallSource recognizes require('x') and import('x') calls
func importCallSource(call *parser.Node) (string, bool) {
	if call.Callee == nil || call.Callee.Type != parser.NodeIdentifier {
		return "", false
	}
	if call.Callee.Name != "require" && call.Callee.Name != "import" {
		return "", false
	}
	if len(call.Arguments) == 0 || call.Arguments[0].Type != parser.NodeStringLiteral {
		return "", false
	}
	return call.Arguments[0].Raw, true
}

// collectGlobalMutations finds module-scope let/var declarations, including
// re-exported ones. Only the Program body and export wrappers are
// inspected, so declarations nested in function or class bodies never
// qualify.
func collectGlobalMutations(ast *parser.Node) []domain.MutableDecl {
	var decls []domain.MutableDecl

	appendDecls := func(decl *parser.Node, exported bool) {
		if decl.Type != parser.NodeVariableDeclaration {
			return
		}
		if decl.Kind != "let" && decl.Kind != "var" {
			return
		}
		for _, d := range decl.Declarations {
			if d.Name == "" {
				continue
			}
			decls = append(decls, domain.MutableDecl{
				Name:     d.Name,
				Line:     d.Location.StartLine,
				Exported: exported,
			})
		}
	}

	for _, stmt := range ast.Body {
		switch stmt.Type {
		case parser.NodeVariableDeclaration:
			appendDecls(stmt, false)
		case parser.NodeExportDeclaration:
			if stmt.Declaration != nil {
				appendDecls(stmt.Declaration, true)
			}
		}
	}
	return decls
}

// countMissingReturnTypes counts exported function declarations, exported
// function-valued variable declarations, and default-exported functions
// lacking an explicit return type. Unexported functions are outside the
// module's public contract and never counted.
func countMissingReturnTypes(ast *parser.Node) int {
	count := 0

	for _, stmt := range ast.Body {
		if stmt.Type != parser.NodeExportDeclaration || stmt.Declaration == nil {
			continue
		}
		decl := stmt.Declaration

		switch {
		case decl.IsFunction():
			if !decl.HasReturnType {
				count++
			}
		case decl.Type == parser.NodeVariableDeclaration:
			for _, d := range decl.Declarations {
				if d.Init != nil && d.Init.IsFunction() &&
					!d.HasTypeAnnotation && !d.Init.HasReturnType {
					count++
				}
			}
		}
	}
	return count
}
