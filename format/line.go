package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/shaderlab/lex"
	"github.com/dhamidi/shaderlab/syntax"
)

// LineEncoder writes one tab-separated record per node and per error, in
// document order, for use with grep and cut.
type LineEncoder struct {
	w    io.Writer
	doc  string
	root *syntax.Node
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc string, root *syntax.Node) error {
	e.doc, e.root = doc, root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	lines := lex.NewLineIndex(e.doc)

	e.root.Walk(func(n *syntax.Node) bool {
		path := nodePath(n)
		if !n.IsStub() {
			start := lines.PositionAt(n.SourceMap.Start)
			fmt.Fprintf(&sb, "node\t%s\t%d:%d\t%d-%d\t%s\n",
				path,
				start.Line+1, start.Column+1,
				n.SourceMap.Start, n.SourceMap.End,
				n.Identifier)
		}
		for _, err := range n.Errors {
			start := lines.PositionAt(err.Start)
			fmt.Fprintf(&sb, "error\t%s\t%d:%d\t%s\t%s\n",
				path,
				start.Line+1, start.Column+1,
				err.Kind,
				err.Description)
		}
		return true
	})

	return []byte(sb.String()), nil
}

func nodePath(n *syntax.Node) string {
	var ids []string
	for _, p := range syntax.Path(n) {
		ids = append(ids, p.Definition.ID)
	}
	return strings.Join(ids, "/")
}

// TreeEncoder writes the indented outline of the tree with byte ranges.
type TreeEncoder struct {
	w    io.Writer
	root *syntax.Node
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(_ string, root *syntax.Node) error {
	e.root = root
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	return []byte(e.root.StringWithPositions()), nil
}
