package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// ASTBuilder lowers the tree-sitter CST into the closed internal AST
type ASTBuilder struct {
	filename     string
	source       []byte
	commentLines map[int]bool
}

// NewASTBuilder creates a new AST builder
func NewASTBuilder(filename string, source []byte) *ASTBuilder {
	return &ASTBuilder{
		filename:     filename,
		source:       source,
		commentLines: make(map[int]bool),
	}
}

// Build builds the AST from a tree-sitter root node
func (b *ASTBuilder) Build(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return NewNode(NodeProgram)
	}

	b.collectComments(tsNode)

	program := b.buildProgram(tsNode)
	program.CommentLines = len(b.commentLines)
	return program
}

// collectComments records every source line covered by a comment node
func (b *ASTBuilder) collectComments(tsNode *sitter.Node) {
	if tsNode.Type() == "comment" {
		start := int(tsNode.StartPoint().Row) + 1
		end := int(tsNode.EndPoint().Row) + 1
		for line := start; line <= end; line++ {
			b.commentLines[line] = true
		}
		return
	}
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil {
			b.collectComments(child)
		}
	}
}

// buildNode lowers a CST node into the closed AST set. Shapes outside the
// set are unwrapped when they merely contain something we care about, and
// dropped otherwise.
func (b *ASTBuilder) buildNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}

	switch tsNode.Type() {
	case "program":
		return b.buildProgram(tsNode)
	case "function_declaration", "generator_function_declaration":
		return b.buildFunctionLike(tsNode, NodeFunction)
	case "function_expression", "function":
		return b.buildFunctionLike(tsNode, NodeFunctionExpression)
	case "arrow_function":
		return b.buildFunctionLike(tsNode, NodeArrowFunction)
	case "method_definition":
		return b.buildFunctionLike(tsNode, NodeMethodDefinition)
	case "class_declaration", "class":
		return b.buildClass(tsNode)
	case "variable_declaration", "lexical_declaration":
		return b.buildVariableDeclaration(tsNode)
	case "variable_declarator":
		return b.buildVariableDeclarator(tsNode)
	case "import_statement":
		return b.buildImportStatement(tsNode)
	case "export_statement":
		return b.buildExportStatement(tsNode)
	case "call_expression":
		return b.buildCallExpression(tsNode)
	case "member_expression":
		return b.buildMemberExpression(tsNode)
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return b.buildIdentifier(tsNode)
	case "string", "template_string":
		return b.buildStringLiteral(tsNode)
	case "statement_block":
		return b.buildBlock(tsNode)
	case "expression_statement":
		return b.buildExpressionStatement(tsNode)

	// Wrappers that may hide a call we need to see
	case "await_expression", "parenthesized_expression", "non_null_expression", "as_expression", "satisfies_expression":
		return b.buildInnerExpression(tsNode)
	case "assignment_expression", "augmented_assignment_expression":
		if right := b.childByField(tsNode, "right"); right != nil {
			return b.buildNode(right)
		}
		return nil

	default:
		return nil
	}
}

func (b *ASTBuilder) buildProgram(tsNode *sitter.Node) *Node {
	node := NewNode(NodeProgram)
	node.Location = b.location(tsNode)
	node.Body = b.buildChildren(tsNode)
	return node
}

func (b *ASTBuilder) buildFunctionLike(tsNode *sitter.Node, nodeType NodeType) *Node {
	node := NewNode(nodeType)
	node.Location = b.location(tsNode)

	if nameNode := b.childByField(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if b.childByField(tsNode, "return_type") != nil {
		node.HasReturnType = true
	}
	if bodyNode := b.childByField(tsNode, "body"); bodyNode != nil {
		if lowered := b.buildNode(bodyNode); lowered != nil {
			if lowered.Type == NodeBlockStatement {
				node.Body = lowered.Body
			} else {
				// Expression-bodied arrow function
				node.Body = []*Node{lowered}
			}
		}
	}
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && child.Type() == "async" {
			node.Async = true
		}
	}
	return node
}

func (b *ASTBuilder) buildClass(tsNode *sitter.Node) *Node {
	node := NewNode(NodeClass)
	node.Location = b.location(tsNode)

	if nameNode := b.childByField(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if bodyNode := b.childByField(tsNode, "body"); bodyNode != nil {
		node.Body = b.buildChildren(bodyNode)
	}
	return node
}

func (b *ASTBuilder) buildVariableDeclaration(tsNode *sitter.Node) *Node {
	node := NewNode(NodeVariableDeclaration)
	node.Location = b.location(tsNode)

	node.Kind = "var"
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "let", "const", "var":
			node.Kind = child.Type()
		case "variable_declarator":
			if decl := b.buildVariableDeclarator(child); decl != nil {
				node.Declarations = append(node.Declarations, decl)
			}
		}
	}
	return node
}

func (b *ASTBuilder) buildVariableDeclarator(tsNode *sitter.Node) *Node {
	node := NewNode(NodeVariableDeclarator)
	node.Location = b.location(tsNode)

	if nameNode := b.childByField(tsNode, "name"); nameNode != nil {
		node.Name = nameNode.Content(b.source)
	}
	if b.childByField(tsNode, "type") != nil {
		node.HasTypeAnnotation = true
	}
	if valueNode := b.childByField(tsNode, "value"); valueNode != nil {
		node.Init = b.buildNode(valueNode)
	}
	return node
}

func (b *ASTBuilder) buildImportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeImportDeclaration)
	node.Location = b.location(tsNode)

	if sourceNode := b.childByField(tsNode, "source"); sourceNode != nil {
		node.Source = unquote(sourceNode.Content(b.source))
	}
	return node
}

func (b *ASTBuilder) buildExportStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExportDeclaration)
	node.Location = b.location(tsNode)

	for i := 0; i < int(tsNode.ChildCount()); i++ {
		if child := tsNode.Child(i); child != nil && child.Type() == "default" {
			node.Default = true
		}
	}
	if declNode := b.childByField(tsNode, "declaration"); declNode != nil {
		node.Declaration = b.buildNode(declNode)
	} else if valueNode := b.childByField(tsNode, "value"); valueNode != nil {
		node.Declaration = b.buildNode(valueNode)
	}
	if sourceNode := b.childByField(tsNode, "source"); sourceNode != nil {
		node.Source = unquote(sourceNode.Content(b.source))
	}
	return node
}

func (b *ASTBuilder) buildCallExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeCallExpression)
	node.Location = b.location(tsNode)

	if fnNode := b.childByField(tsNode, "function"); fnNode != nil {
		switch fnNode.Type() {
		case "import":
			callee := NewNode(NodeIdentifier)
			callee.Name = "import"
			callee.Location = b.location(fnNode)
			node.Callee = callee
		default:
			node.Callee = b.buildNode(fnNode)
		}
	}
	if argsNode := b.childByField(tsNode, "arguments"); argsNode != nil {
		for i := 0; i < int(argsNode.ChildCount()); i++ {
			child := argsNode.Child(i)
			if child == nil {
				continue
			}
			if arg := b.buildNode(child); arg != nil {
				node.Arguments = append(node.Arguments, arg)
			}
		}
	}
	return node
}

func (b *ASTBuilder) buildMemberExpression(tsNode *sitter.Node) *Node {
	node := NewNode(NodeMemberExpression)
	node.Location = b.location(tsNode)

	if objNode := b.childByField(tsNode, "object"); objNode != nil {
		node.Object = b.buildNode(objNode)
	}
	if propNode := b.childByField(tsNode, "property"); propNode != nil {
		node.Property = b.buildNode(propNode)
	}
	return node
}

func (b *ASTBuilder) buildIdentifier(tsNode *sitter.Node) *Node {
	node := NewNode(NodeIdentifier)
	node.Location = b.location(tsNode)
	node.Name = tsNode.Content(b.source)
	return node
}

func (b *ASTBuilder) buildStringLiteral(tsNode *sitter.Node) *Node {
	node := NewNode(NodeStringLiteral)
	node.Location = b.location(tsNode)
	node.Raw = unquote(tsNode.Content(b.source))
	return node
}

func (b *ASTBuilder) buildBlock(tsNode *sitter.Node) *Node {
	node := NewNode(NodeBlockStatement)
	node.Location = b.location(tsNode)
	node.Body = b.buildChildren(tsNode)
	return node
}

func (b *ASTBuilder) buildExpressionStatement(tsNode *sitter.Node) *Node {
	node := NewNode(NodeExpressionStatement)
	node.Location = b.location(tsNode)
	node.Body = b.buildChildren(tsNode)
	if len(node.Body) == 0 {
		return nil
	}
	return node
}

// buildInnerExpression unwraps a single-expression wrapper to its payload
func (b *ASTBuilder) buildInnerExpression(tsNode *sitter.Node) *Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if inner := b.buildNode(child); inner != nil {
			return inner
		}
	}
	return nil
}

// buildChildren lowers all named, non-trivia children
func (b *ASTBuilder) buildChildren(tsNode *sitter.Node) []*Node {
	var nodes []*Node
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child == nil || b.isTrivia(child) {
			continue
		}
		if lowered := b.buildNode(child); lowered != nil {
			nodes = append(nodes, lowered)
		}
	}
	return nodes
}

func (b *ASTBuilder) location(tsNode *sitter.Node) Location {
	return Location{
		File:      b.filename,
		StartLine: int(tsNode.StartPoint().Row) + 1,
		StartCol:  int(tsNode.StartPoint().Column),
		EndLine:   int(tsNode.EndPoint().Row) + 1,
		EndCol:    int(tsNode.EndPoint().Column),
	}
}

// childByField gets a child node by field name
func (b *ASTBuilder) childByField(tsNode *sitter.Node, fieldName string) *sitter.Node {
	for i := 0; i < int(tsNode.ChildCount()); i++ {
		child := tsNode.Child(i)
		if child != nil && tsNode.FieldNameForChild(i) == fieldName {
			return child
		}
	}
	return nil
}

// isTrivia checks if a node is trivia (comments, empty tokens)
func (b *ASTBuilder) isTrivia(tsNode *sitter.Node) bool {
	nodeType := tsNode.Type()
	return nodeType == "comment" || nodeType == ""
}

// unquote strips matching quote characters from a string literal
func unquote(raw string) string {
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}
