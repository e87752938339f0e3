package surface

// Document owns the root of a node tree and its body element
type Document struct {
	root *Node
	body *Node
}

// NewDocument creates a document with an empty body
func NewDocument() *Document {
	root := &Node{ID: "root", Visible: true, TabIndex: -1, kind: KindRoot}
	body := NewElement("body")
	body.Placement = PlaceFill
	root.AppendChild(body)
	return &Document{root: root, body: body}
}

// Root returns the document root
func (d *Document) Root() *Node {
	return d.root
}

// Body returns the default attachment point for overlays
func (d *Document) Body() *Node {
	return d.body
}

// Walk visits attached nodes in tree order. Returning false from fn skips
// the node's children.
func (d *Document) Walk(fn func(n *Node) bool) {
	walk(d.root, fn)
}

func walk(n *Node, fn func(n *Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		walk(c, fn)
	}
}

// Find returns the first attached node with the given id
func (d *Document) Find(id string) *Node {
	var found *Node
	d.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
