package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
)

// Parser wraps a tree-sitter parser for JavaScript/TypeScript
type Parser struct {
	parser   *sitter.Parser
	language *sitter.Language
	isTS     bool
}

// NewParser creates a new JavaScript parser
func NewParser() *Parser {
	parser := sitter.NewParser()
	lang := javascript.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     false,
	}
}

// NewTypeScriptParser creates a new TypeScript parser
func NewTypeScriptParser() *Parser {
	parser := sitter.NewParser()
	lang := tsx.GetLanguage()
	parser.SetLanguage(lang)

	return &Parser{
		parser:   parser,
		language: lang,
		isTS:     true,
	}
}

// ParseFile parses a JavaScript/TypeScript file into the closed AST.
// Unparsable input degrades to an empty Program node rather than an error
// so scoring proceeds with full bad-case penalties.
func (p *Parser) ParseFile(filename string, source []byte) (*Node, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse file %s: %v", filename, err)
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode == nil {
		return NewNode(NodeProgram), nil
	}

	builder := NewASTBuilder(filename, source)
	return builder.Build(rootNode), nil
}

// Parse parses JavaScript/TypeScript source code
func (p *Parser) Parse(source []byte) (*Node, error) {
	return p.ParseFile("<input>", source)
}

// ParseString parses JavaScript/TypeScript source code from a string
func (p *Parser) ParseString(source string) (*Node, error) {
	return p.Parse([]byte(source))
}

// IsTypeScript returns true if this parser is configured for TypeScript
func (p *Parser) IsTypeScript() bool {
	return p.isTS
}

// Close closes the parser and frees resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// IsTypeScriptFile reports whether the path carries a TypeScript extension
func IsTypeScriptFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return true
	}
	return false
}

// ParseForLanguage selects the JavaScript or TypeScript grammar by file
// extension and parses the source
func ParseForLanguage(filename string, source []byte) (*Node, error) {
	var p *Parser
	if IsTypeScriptFile(filename) {
		p = NewTypeScriptParser()
	} else {
		p = NewParser()
	}
	defer p.Close()

	return p.ParseFile(filename, source)
}
