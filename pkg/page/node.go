package page

import "strings"

// Node is an in-memory Element. A tree of nodes forms a Document.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Children []*Node

	keyHandlers []func(KeyEvent)
	clickFunc   func()
	clicks      int
}

// NewNode creates a node with the given tag and attributes.
func NewNode(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Node{Tag: strings.ToLower(tag), Attrs: attrs, Children: children}
}

// ID returns the id attribute.
func (n *Node) ID() string {
	return n.Attrs["id"]
}

// TagName returns the lower-case tag name.
func (n *Node) TagName() string {
	return n.Tag
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// OnKeyPress registers a key handler.
func (n *Node) OnKeyPress(handler func(KeyEvent)) {
	n.keyHandlers = append(n.keyHandlers, handler)
}

// OnClick sets the click action.
func (n *Node) OnClick(fn func()) {
	n.clickFunc = fn
}

// Click activates the node.
func (n *Node) Click() {
	n.clicks++
	if n.clickFunc != nil {
		n.clickFunc()
	}
}

// Clicks returns how many times the node was clicked.
func (n *Node) Clicks() int {
	return n.clicks
}

// Press delivers a key press to the node's handlers.
func (n *Node) Press(key string) {
	for _, h := range n.keyHandlers {
		h(KeyEvent{Key: key})
	}
}

// Tree is a Document over a node tree.
type Tree struct {
	Root *Node
}

// NewTree creates a document rooted at root.
func NewTree(root *Node) *Tree {
	return &Tree{Root: root}
}

// Elements returns all nodes below and including the root, depth first.
func (t *Tree) Elements() []Element {
	var out []Element
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.Root)
	return out
}

// ElementByID returns the first node with the given id, or nil.
func (t *Tree) ElementByID(id string) Element {
	if id == "" {
		return nil
	}
	for _, el := range t.Elements() {
		if el.ID() == id {
			return el
		}
	}
	return nil
}
