package lint

import (
	"github.com/dhamidi/shaderlab/shaderlab"
	"github.com/dhamidi/shaderlab/syntax"
)

// Block is one program block to compile on its own.
type Block struct {
	ID string
	// Content is the program text and Offset its position in the document.
	Content string
	Offset  int
	// Prelude holds the contents of include blocks visible to the program,
	// in document order. They are compiled ahead of Content.
	Prelude []string
}

// Blocks returns the HLSL and Cg blocks of a ShaderLab tree in document
// order. Blocks inside error nodes are still returned; their content is
// well delimited even when the surrounding structure is not.
func Blocks(root *syntax.Node) []Block {
	var blocks []Block
	root.Walk(func(n *syntax.Node) bool {
		if n.IsStub() || !shaderlab.IsHLSL(n.Definition) {
			return true
		}
		blocks = append(blocks, Block{
			ID:      n.Definition.ID,
			Content: n.Content,
			Offset:  n.SourceMap.ContentStart,
			Prelude: prelude(n),
		})
		return false
	})
	return blocks
}

// prelude collects the include blocks of the matching kind that are
// siblings of n or of one of its ancestors and end before n starts.
func prelude(n *syntax.Node) []string {
	include := shaderlab.IncludeOf(n.Definition)
	if include == "" {
		return nil
	}
	var parts []string
	for _, ancestor := range syntax.Path(n.Parent()) {
		for _, child := range ancestor.ChildrenOf(include) {
			if child.SourceMap.End <= n.SourceMap.Start {
				parts = append(parts, child.Content)
			}
		}
	}
	return parts
}
