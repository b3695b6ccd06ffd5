package workspace

import (
	"strings"

	"github.com/dhamidi/shaderlab/format"
	"github.com/dhamidi/shaderlab/lex"
	"github.com/dhamidi/shaderlab/syntax"
)

// Hover is the markdown shown for a position.
type Hover struct {
	Contents string
	Node     *syntax.Node
}

// Hover describes the innermost node at offset: its keywords (or the word
// under the cursor when it has none) and identifier as a code block,
// followed by the name of its definition.
func (w *Workspace) Hover(uri string, offset int) (Hover, bool) {
	doc := w.Document(uri)
	if doc == nil {
		return Hover{}, false
	}
	node := syntax.Locate(doc.Tree, offset)
	def := node.Definition

	content := strings.TrimSpace(def.Keyword + " " + def.EndKeyword)
	if content == "" {
		content = lex.WordAt(doc.Text, offset)
	}
	if content == "" {
		return Hover{}, false
	}
	return Hover{
		Contents: format.Code("shaderlab", content, node.Identifier) + "\n" + format.Title(def.ID),
		Node:     node,
	}, true
}
