package syntax

import (
	"fmt"
	"strings"
)

// SourceMap locates a node in the original document. Offsets are half-open
// byte offsets: the node spans [Start, End) and its content spans
// [ContentStart, ContentEnd).
type SourceMap struct {
	Start        int
	ContentStart int
	ContentEnd   int
	End          int
}

// Contains reports whether offset lies within the node, counting the offset
// just past its last byte so a cursor after a closing brace still matches.
// An offset can therefore be contained by two adjacent siblings; see Locate.
func (m SourceMap) Contains(offset int) bool {
	return m.Start <= offset && offset <= m.End
}

type ErrorKind int

const (
	// ErrorStructural is a missing brace, a brace imbalance or a misordered
	// keyword pair. It stops the search for that definition.
	ErrorStructural ErrorKind = iota
	// ErrorIdentifier is an identifier count that does not match the
	// definition's arity. The node is still expanded.
	ErrorIdentifier
)

func (k ErrorKind) String() string {
	if k == ErrorIdentifier {
		return "identifier"
	}
	return "structural"
}

// NodeError is a problem found while matching a node. End is optional: a
// value not greater than Start means the error covers one byte.
type NodeError struct {
	Kind        ErrorKind
	Start       int
	End         int
	Description string
}

// Span returns the half-open range to report for the error.
func (e NodeError) Span() (start, end int) {
	if e.End > e.Start {
		return e.Start, e.End
	}
	return e.Start, e.Start + 1
}

func (e NodeError) Error() string {
	return fmt.Sprintf("%d: %s", e.Start, e.Description)
}

// Node is one structural match. The parent pointer is a lookup aid only;
// the parent owns its children, never the reverse.
type Node struct {
	Definition *Definition
	Identifier string
	Content    string
	Children   []*Node
	SourceMap  SourceMap
	Errors     []NodeError

	parent *Node
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		child.parent = n
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsStub() bool {
	return n.Definition == Stub
}

func (n *Node) FirstChildOf(id string) *Node {
	for _, child := range n.Children {
		if child.Definition.ID == id {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOf(id string) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Definition.ID == id {
			result = append(result, child)
		}
	}
	return result
}

// Walk visits n and its descendants in document order. Returning false from
// fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// WalkErrors calls fn for every error in the tree, parents before children.
func WalkErrors(root *Node, fn func(*Node, NodeError)) {
	root.Walk(func(n *Node) bool {
		for _, e := range n.Errors {
			fn(n, e)
		}
		return true
	})
}

// Errors collects every error in the tree in WalkErrors order.
func Errors(root *Node) []NodeError {
	var errs []NodeError
	WalkErrors(root, func(_ *Node, e NodeError) {
		errs = append(errs, e)
	})
	return errs
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Definition.ID)
	if showPositions {
		m := n.SourceMap
		fmt.Fprintf(sb, " [%d-%d content %d-%d]", m.Start, m.End, m.ContentStart, m.ContentEnd)
	}
	if n.Identifier != "" {
		sb.WriteString(" " + n.Identifier)
	}
	for _, e := range n.Errors {
		sb.WriteString(" ERROR: " + e.Description)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1, showPositions)
	}
}
