// Package surface is a small retained node tree. Overlay code attaches,
// detaches and restyles nodes; the compositor paints whatever is attached to
// the document root.
package surface

import "slices"

// Kind distinguishes ordinary elements from fragments and the document root.
type Kind int

const (
	KindElement Kind = iota
	KindFragment
	KindRoot
)

// Placement controls how the compositor lays a node out on screen
type Placement int

const (
	// PlaceFill covers the whole screen
	PlaceFill Placement = iota
	// PlaceCenter centers the node's content
	PlaceCenter
	// PlaceRight pins the content to the right edge at full height
	PlaceRight
	// PlaceAnchor puts the content at the node's X/Y
	PlaceAnchor
)

// Node is one element of the tree
type Node struct {
	ID        string
	Classes   ClassList
	ZIndex    int
	Visible   bool
	TabIndex  int
	Placement Placement
	X, Y      int
	Content   string

	kind      Kind
	parent    *Node
	children  []*Node
	listeners map[EventType][]Listener
}

// NewElement creates a detached, visible element node
func NewElement(id string) *Node {
	return &Node{
		ID:       id,
		Visible:  true,
		TabIndex: -1,
		kind:     KindElement,
	}
}

// NewFragment creates a detached fragment node. A fragment is never a valid
// attachment point for overlay backdrops.
func NewFragment() *Node {
	return &Node{Visible: true, TabIndex: -1, kind: KindFragment}
}

// Kind returns the node kind
func (n *Node) Kind() Kind {
	return n.kind
}

// Parent returns the parent node, or nil when detached
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list in tree order
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// AppendChild moves child to the end of n's children, detaching it from any
// previous parent first.
func (n *Node) AppendChild(child *Node) {
	if child == nil || child.isAncestorOf(n) {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild removes child from n. It does nothing if child belongs to
// another parent.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	if i := slices.Index(n.children, child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.parent = nil
}

// Detach removes the node from its parent, if any
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Attached reports whether the node is reachable from a document root
func (n *Node) Attached() bool {
	for p := n; p != nil; p = p.parent {
		if p.kind == KindRoot {
			return true
		}
	}
	return false
}

// isAncestorOf reports whether n is other or one of its ancestors
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
