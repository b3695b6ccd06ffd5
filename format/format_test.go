package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/shaderlab/syntax"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"subShaderDeclaration", "Sub Shader Declaration"},
		{"root", "Root"},
		{"hlslProgram", "Hlsl Program"},
		{"grabPassDeclaration", "Grab Pass Declaration"},
	}
	for _, tt := range tests {
		if got := Title(tt.in); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarkdownHelpers(t *testing.T) {
	if got, want := Code("shaderlab", "  Pass ", "{ }"), "```shaderlab\nPass { }\n```\n"; got != want {
		t.Errorf("Code() = %q, want %q", got, want)
	}
	if got, want := Code("shaderlab", "Shader", ""), "```shaderlab\nShader\n```\n"; got != want {
		t.Errorf("Code() with empty part = %q, want %q", got, want)
	}
	if got := Pre("Tags"); got != "`Tags`" {
		t.Errorf("Pre() = %q", got)
	}
	if got := Heading("Syntax"); got != "#### Syntax" {
		t.Errorf("Heading() = %q", got)
	}
	if got := Link("docs", "https://example.com"); got != "[docs](https://example.com)" {
		t.Errorf("Link() = %q", got)
	}
}

func testTree(t *testing.T) (string, *syntax.Node) {
	t.Helper()
	reg := syntax.MustRegistry("root",
		&syntax.Definition{ID: "root", Strategy: syntax.StrategyRoot, Children: func() []string { return []string{"block"} }},
		&syntax.Definition{ID: "block", Keyword: "Block", Identifier: syntax.ArityOne, Strategy: syntax.StrategyBlock},
	)
	doc := "Block \"a\" {\n}\nBlock {"
	return doc, syntax.Parse(doc, reg)
}

func TestTreeJSONEncoder(t *testing.T) {
	doc, root := testTree(t)
	var buf bytes.Buffer
	if err := NewTreeJSONEncoder(&buf).Encode(doc, root); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded treeJSONNode
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.ID != "root" || len(decoded.Children) == 0 {
		t.Fatalf("unexpected root: %+v", decoded)
	}
	block := decoded.Children[0]
	if block.ID != "block" || block.Identifier != `"a"` {
		t.Errorf("first child = %+v", block)
	}
	if block.Span.Start.Line != 1 || block.Span.Start.Column != 1 {
		t.Errorf("block starts at %+v, want line 1 column 1", block.Span.Start)
	}
	if block.Span.End.Line != 2 {
		t.Errorf("block ends on line %d, want 2", block.Span.End.Line)
	}
	if !strings.Contains(buf.String(), "Mismatched braces.") {
		t.Errorf("root imbalance error missing from output:\n%s", buf.String())
	}
}

func TestLineEncoder(t *testing.T) {
	doc, root := testTree(t)
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(doc, root); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"node\troot\t1:1\t0-",
		"node\troot/block\t1:1\t0-13\t\"a\"\n",
		"error\troot/stub\t",
		"\tstructural\t'}' expected.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"json", "lines", "tree"} {
		if _, ok := NewEncoder(name, &bytes.Buffer{}); !ok {
			t.Errorf("NewEncoder(%q) not found", name)
		}
	}
	if _, ok := NewEncoder("xml", &bytes.Buffer{}); ok {
		t.Errorf("NewEncoder(xml) should fail")
	}
}
