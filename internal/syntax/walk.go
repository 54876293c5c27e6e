package syntax

// Action tells Walk how to proceed after entering a node.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota
	// Skip leaves the node's children unvisited but keeps walking.
	Skip
	// Abort ends the whole walk; Enter is not called again.
	Abort
)

// Visitor is called once per node, parent before children.
type Visitor interface {
	Enter(n *Node) Action
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(n *Node) Action

// Enter calls f(n).
func (f VisitorFunc) Enter(n *Node) Action { return f(n) }

// Walk visits root and its named descendants depth-first in pre-order.
// Walking a nil root is a no-op. Visitors may start nested walks on
// subtrees; no state is shared between walks.
func Walk(root *Node, v Visitor) {
	if root == nil || v == nil {
		return
	}
	walk(root, v)
}

// walk reports false once the walk has been aborted.
func walk(n *Node, v Visitor) bool {
	switch v.Enter(n) {
	case Abort:
		return false
	case Skip:
		return true
	}
	for _, child := range n.Children() {
		if !walk(child, v) {
			return false
		}
	}
	return true
}
