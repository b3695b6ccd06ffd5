// Package format renders parse trees and hover text.
package format

import (
	"encoding"
	"io"

	"github.com/dhamidi/shaderlab/syntax"
)

// Encoder writes one parse tree. The document text is needed to turn the
// tree's byte offsets into lines and columns.
type Encoder interface {
	encoding.TextMarshaler
	Encode(doc string, root *syntax.Node) error
}

// NewEncoder returns the encoder registered under name: "json", "lines" or
// "tree".
func NewEncoder(name string, w io.Writer) (Encoder, bool) {
	switch name {
	case "json":
		return NewTreeJSONEncoder(w), true
	case "lines":
		return NewLineEncoder(w), true
	case "tree":
		return NewTreeEncoder(w), true
	}
	return nil, false
}
