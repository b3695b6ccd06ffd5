package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/shaderlab/lex"
	"github.com/dhamidi/shaderlab/syntax"
)

type TreeJSONEncoder struct {
	w    io.Writer
	doc  string
	root *syntax.Node
}

func NewTreeJSONEncoder(w io.Writer) *TreeJSONEncoder {
	return &TreeJSONEncoder{w: w}
}

func (e *TreeJSONEncoder) Encode(doc string, root *syntax.Node) error {
	e.doc, e.root = doc, root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TreeJSONEncoder) MarshalText() ([]byte, error) {
	lines := lex.NewLineIndex(e.doc)
	return json.MarshalIndent(nodeToJSON(lines, e.root), "", "  ")
}

type treeJSONNode struct {
	ID         string          `json:"id"`
	Strategy   string          `json:"strategy"`
	Identifier string          `json:"identifier,omitempty"`
	Span       treeJSONSpan    `json:"span"`
	Content    *treeJSONSpan   `json:"content,omitempty"`
	Errors     []treeJSONError `json:"errors,omitempty"`
	Children   []*treeJSONNode `json:"children,omitempty"`
}

type treeJSONSpan struct {
	Start treeJSONPosition `json:"start"`
	End   treeJSONPosition `json:"end"`
}

type treeJSONPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type treeJSONError struct {
	Kind    string       `json:"kind"`
	Message string       `json:"message"`
	Span    treeJSONSpan `json:"span"`
}

func span(lines *lex.LineIndex, start, end int) treeJSONSpan {
	return treeJSONSpan{Start: position(lines, start), End: position(lines, end)}
}

// position reports one-based lines and columns, the way compilers print them.
func position(lines *lex.LineIndex, offset int) treeJSONPosition {
	p := lines.PositionAt(offset)
	return treeJSONPosition{Offset: offset, Line: p.Line + 1, Column: p.Column + 1}
}

func nodeToJSON(lines *lex.LineIndex, n *syntax.Node) *treeJSONNode {
	m := n.SourceMap
	jn := &treeJSONNode{
		ID:         n.Definition.ID,
		Strategy:   n.Definition.Strategy.String(),
		Identifier: n.Identifier,
		Span:       span(lines, m.Start, m.End),
	}

	if !n.IsStub() && (m.ContentStart != m.Start || m.ContentEnd != m.End) {
		content := span(lines, m.ContentStart, m.ContentEnd)
		jn.Content = &content
	}

	for _, e := range n.Errors {
		start, end := e.Span()
		jn.Errors = append(jn.Errors, treeJSONError{
			Kind:    e.Kind.String(),
			Message: e.Description,
			Span:    span(lines, start, end),
		})
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*treeJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(lines, child)
		}
	}

	return jn
}
