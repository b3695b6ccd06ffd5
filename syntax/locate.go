package syntax

// Locate returns the innermost node of the tree rooted at root whose range
// contains offset. Stub nodes carry errors but no structure and are never
// returned. When no child contains offset, root itself is returned.
//
// Between adjacent siblings such as "Pass{}Pass{}" the offset of the second
// keyword is both the end of the first and the start of the second; the
// sibling starting there wins.
func Locate(root *Node, offset int) *Node {
	node := root
	for {
		var next *Node
		for _, child := range node.Children {
			if child.IsStub() || !child.SourceMap.Contains(offset) {
				continue
			}
			next = child
			if child.SourceMap.End != offset {
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// Path returns the chain of nodes from the root down to n.
func Path(n *Node) []*Node {
	var path []*Node
	for cur := n; cur != nil; cur = cur.parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
