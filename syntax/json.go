package syntax

import "encoding/json"

type jsonNode struct {
	ID         string      `json:"id"`
	Strategy   string      `json:"strategy"`
	Identifier string      `json:"identifier,omitempty"`
	SourceMap  jsonSpan    `json:"sourceMap"`
	Errors     []jsonError `json:"errors,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start        int `json:"start"`
	ContentStart int `json:"contentStart"`
	ContentEnd   int `json:"contentEnd"`
	End          int `json:"end"`
}

type jsonError struct {
	Kind        string `json:"kind"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Description string `json:"description"`
}

// MarshalJSON encodes the subtree without node contents; the source map is
// enough to recover them from the document.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		ID:         n.Definition.ID,
		Strategy:   n.Definition.Strategy.String(),
		Identifier: n.Identifier,
		SourceMap: jsonSpan{
			Start:        n.SourceMap.Start,
			ContentStart: n.SourceMap.ContentStart,
			ContentEnd:   n.SourceMap.ContentEnd,
			End:          n.SourceMap.End,
		},
	}

	for _, e := range n.Errors {
		start, end := e.Span()
		jn.Errors = append(jn.Errors, jsonError{
			Kind:        e.Kind.String(),
			Start:       start,
			End:         end,
			Description: e.Description,
		})
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}
