package parser

import (
	"testing"
)

func TestParseString(t *testing.T) {
	p := NewParser()
	defer p.Close()

	t.Run("parses a simple program", func(t *testing.T) {
		ast, err := p.ParseString(`function greet() { return "hi"; }`)
		if err != nil {
			t.Fatalf("ParseString failed: %v", err)
		}
		if ast == nil || ast.Type != NodeProgram {
			t.Fatalf("root = %+v, want program node", ast)
		}
		if len(ast.Body) != 1 || !ast.Body[0].IsFunction() {
			t.Errorf("Body = %+v, want one function declaration", ast.Body)
		}
		if ast.Body[0].Name != "greet" {
			t.Errorf("Name = %s, want greet", ast.Body[0].Name)
		}
	})

	t.Run("empty source yields an empty program", func(t *testing.T) {
		ast, err := p.ParseString("")
		if err != nil {
			t.Fatalf("ParseString failed: %v", err)
		}
		if len(ast.Body) != 0 {
			t.Errorf("Body = %+v, want empty", ast.Body)
		}
	})
}

func TestFunctionNodes(t *testing.T) {
	p := NewParser()
	defer p.Close()

	tests := []struct {
		name   string
		source string
	}{
		{"function declaration", `function f() {}`},
		{"arrow function", `const f = () => {};`},
		{"function expression", `const f = function () {};`},
		{"class method", `class C { method() {} }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ast, err := p.ParseString(tt.source)
			if err != nil {
				t.Fatalf("ParseString failed: %v", err)
			}
			count := 0
			ast.Walk(func(n *Node) bool {
				if n.IsFunction() {
					count++
				}
				return true
			})
			if count != 1 {
				t.Errorf("function count = %d, want 1", count)
			}
		})
	}
}

func TestFunctionLineSpan(t *testing.T) {
	p := NewParser()
	defer p.Close()

	source := `function long() {
  const a = 1;
  const b = 2;
  return a + b;
}`
	ast, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	fn := ast.Body[0]
	if span := fn.LineSpan(); span != 5 {
		t.Errorf("LineSpan = %d, want 5", span)
	}
}

func TestCommentLines(t *testing.T) {
	p := NewParser()
	defer p.Close()

	t.Run("line and block comments", func(t *testing.T) {
		source := `// one
const a = 1;
/* two
   three */
const b = 2;
`
		ast, err := p.ParseString(source)
		if err != nil {
			t.Fatalf("ParseString failed: %v", err)
		}
		if ast.CommentLines != 3 {
			t.Errorf("CommentLines = %d, want 3", ast.CommentLines)
		}
	})

	t.Run("no comments", func(t *testing.T) {
		ast, err := p.ParseString(`const a = 1;`)
		if err != nil {
			t.Fatalf("ParseString failed: %v", err)
		}
		if ast.CommentLines != 0 {
			t.Errorf("CommentLines = %d, want 0", ast.CommentLines)
		}
	})
}

func TestTypeScriptParsing(t *testing.T) {
	p := NewTypeScriptParser()
	defer p.Close()

	t.Run("return type annotation", func(t *testing.T) {
		ast, err := p.ParseString(`export function typed(): number { return 1; }`)
		if err != nil {
			t.Fatalf("ParseString failed: %v", err)
		}
		export := ast.Body[0]
		if export.Type != NodeExportDeclaration || export.Declaration == nil {
			t.Fatalf("Body[0] = %+v, want export declaration", export)
		}
		if !export.Declaration.HasReturnType {
			t.Error("HasReturnType = false, want true")
		}
	})

	t.Run("tsx component", func(t *testing.T) {
		ast, err := p.ParseString(`const App = () => <div>hello</div>;`)
		if err != nil {
			t.Fatalf("ParseString failed: %v", err)
		}
		count := 0
		ast.Walk(func(n *Node) bool {
			if n.IsFunction() {
				count++
			}
			return true
		})
		if count != 1 {
			t.Errorf("function count = %d, want 1", count)
		}
	})
}

func TestIsTypeScriptFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.ts", true},
		{"a.tsx", true},
		{"a.mts", true},
		{"a.cts", true},
		{"a.js", false},
		{"a.jsx", false},
		{"a.mjs", false},
	}
	for _, tt := range tests {
		if got := IsTypeScriptFile(tt.path); got != tt.want {
			t.Errorf("IsTypeScriptFile(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestImportNodes(t *testing.T) {
	p := NewParser()
	defer p.Close()

	ast, err := p.ParseString(`import { a } from './a';
export { b } from './b';
`)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if len(ast.Body) != 2 {
		t.Fatalf("Body = %+v, want 2 statements", ast.Body)
	}
	if ast.Body[0].Type != NodeImportDeclaration || ast.Body[0].Source != "./a" {
		t.Errorf("Body[0] = %+v, want import of ./a", ast.Body[0])
	}
	if ast.Body[1].Type != NodeExportDeclaration || ast.Body[1].Source != "./b" {
		t.Errorf("Body[1] = %+v, want re-export of ./b", ast.Body[1])
	}
}
