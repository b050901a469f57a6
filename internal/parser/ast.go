package parser

import "fmt"

// NodeType represents the type of AST node. The set is deliberately closed:
// it covers only the shapes this tool inspects (function-like declarations,
// variable declarations, import/export wrappers, and the call expressions
// needed to spot require()/import()). Everything else is dropped when the
// tree-sitter CST is lowered.
type NodeType string

const (
	NodeProgram NodeType = "Program"

	// Function-like declarations
	NodeFunction           NodeType = "FunctionDeclaration"
	NodeFunctionExpression NodeType = "FunctionExpression"
	NodeArrowFunction      NodeType = "ArrowFunctionExpression"
	NodeMethodDefinition   NodeType = "MethodDefinition"

	// Class declarations (kept so class bodies are recognizable as
	// non-module scope)
	NodeClass NodeType = "ClassDeclaration"

	// Variable declarations
	NodeVariableDeclaration NodeType = "VariableDeclaration"
	NodeVariableDeclarator  NodeType = "VariableDeclarator"
	NodeIdentifier          NodeType = "Identifier"

	// Module system
	NodeImportDeclaration NodeType = "ImportDeclaration"
	NodeExportDeclaration NodeType = "ExportDeclaration"

	// Expressions needed for require()/import() and assertion counting
	NodeCallExpression   NodeType = "CallExpression"
	NodeMemberExpression NodeType = "MemberExpression"
	NodeStringLiteral    NodeType = "StringLiteral"

	// Structure
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
)

// Location represents the position of a node in the source code
type Location struct {
	File      string
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String returns a string representation of the location
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.StartLine, l.StartCol)
}

// Node represents an AST node
type Node struct {
	Type     NodeType
	Name     string
	Location Location

	// Body holds statements for Program, functions, classes, and blocks
	Body []*Node

	// Variable declaration fields
	Kind         string  // var, let, const
	Declarations []*Node // Variable declarators
	Init         *Node   // Declarator initializer

	// Import/Export fields
	Source      string // Import/re-export source, unquoted
	Declaration *Node  // Wrapped declaration for export statements
	Default     bool   // Export default

	// Call/member expression fields
	Callee    *Node
	Arguments []*Node
	Object    *Node
	Property  *Node

	// Type annotation presence (TypeScript)
	HasReturnType     bool // Function carries an explicit return type
	HasTypeAnnotation bool // Declarator carries an explicit type

	Async bool

	// Raw is the literal source text for string literals
	Raw string

	// CommentLines is the number of distinct source lines carrying a
	// comment; populated on the Program node only
	CommentLines int
}

// NewNode creates a new AST node
func NewNode(nodeType NodeType) *Node {
	return &Node{Type: nodeType}
}

// Walk traverses the AST depth-first, calling visitor for each node.
// Returning false stops traversal of that branch.
func (n *Node) Walk(visitor func(*Node) bool) {
	if n == nil {
		return
	}
	if !visitor(n) {
		return
	}
	for _, stmt := range n.Body {
		stmt.Walk(visitor)
	}
	for _, decl := range n.Declarations {
		decl.Walk(visitor)
	}
	for _, arg := range n.Arguments {
		arg.Walk(visitor)
	}
	if n.Init != nil {
		n.Init.Walk(visitor)
	}
	if n.Declaration != nil {
		n.Declaration.Walk(visitor)
	}
	if n.Callee != nil {
		n.Callee.Walk(visitor)
	}
	if n.Object != nil {
		n.Object.Walk(visitor)
	}
	if n.Property != nil {
		n.Property.Walk(visitor)
	}
}

// String returns a string representation of the node
func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s) at %s", n.Type, n.Name, n.Location)
	}
	return fmt.Sprintf("%s at %s", n.Type, n.Location)
}

// IsFunction returns true if the node is function-like
func (n *Node) IsFunction() bool {
	switch n.Type {
	case NodeFunction, NodeFunctionExpression, NodeArrowFunction, NodeMethodDefinition:
		return true
	}
	return false
}

// LineSpan returns the number of source lines the node covers
func (n *Node) LineSpan() int {
	return n.Location.EndLine - n.Location.StartLine + 1
}
