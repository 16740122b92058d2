package dom

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Attr is a single attribute name/value pair in declaration order.
type Attr struct {
	Name  string
	Value string
}

// Node is a markup tree unit: a tag, an ordered attribute mapping, ordered
// children, and optional text content. Child order is significant because it
// drives both rendered order and option indices.
type Node struct {
	tag      string
	attrs    *orderedmap.OrderedMap[string, string]
	children []*Node
	text     string
	indent   string
	raw      bool
}

// New constructs a node for the supplied tag.
func New(tag string) *Node {
	return &Node{
		tag:   tag,
		attrs: orderedmap.New[string, string](),
	}
}

// NewText constructs a node with text content.
func NewText(tag, text string) *Node {
	n := New(tag)
	n.text = text
	return n
}

// NewRaw constructs a node that emits markup verbatim. It is used to splice
// the output of external render callbacks into a tree; the markup must
// already be safe.
func NewRaw(markup string) *Node {
	n := New("")
	n.text = markup
	n.raw = true
	return n
}

// IsRaw reports whether the node holds verbatim markup.
func (n *Node) IsRaw() bool {
	return n != nil && n.raw
}

// Tag returns the node tag name.
func (n *Node) Tag() string {
	if n == nil {
		return ""
	}
	return n.tag
}

// SetAttribute sets or replaces an attribute, keeping the original position
// when the key already exists.
func (n *Node) SetAttribute(name, value string) *Node {
	n.attrs.Set(name, value)
	return n
}

// SetAttributes applies the pairs in order.
func (n *Node) SetAttributes(attrs ...Attr) *Node {
	for _, attr := range attrs {
		n.attrs.Set(attr.Name, attr.Value)
	}
	return n
}

// Attribute returns the attribute value and whether it is present.
func (n *Node) Attribute(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	return n.attrs.Get(name)
}

// AttributeValue returns the attribute value or an empty string.
func (n *Node) AttributeValue(name string) string {
	value, _ := n.Attribute(name)
	return value
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.Attribute(name)
	return ok
}

// RemoveAttribute deletes the attribute if present.
func (n *Node) RemoveAttribute(name string) *Node {
	n.attrs.Delete(name)
	return n
}

// Attributes returns a copy of the attributes in insertion order.
func (n *Node) Attributes() []Attr {
	if n == nil || n.attrs.Len() == 0 {
		return nil
	}
	out := make([]Attr, 0, n.attrs.Len())
	for pair := n.attrs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Attr{Name: pair.Key, Value: pair.Value})
	}
	return out
}

// AttributeMap returns the attributes as a plain map. Order is lost.
func (n *Node) AttributeMap() map[string]string {
	if n == nil || n.attrs.Len() == 0 {
		return nil
	}
	out := make(map[string]string, n.attrs.Len())
	for pair := n.attrs.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// AddChild appends a child node.
func (n *Node) AddChild(child *Node) *Node {
	if child != nil {
		n.children = append(n.children, child)
	}
	return n
}

// AddChildren appends the children preserving their order.
func (n *Node) AddChildren(children ...*Node) *Node {
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

// RemoveChildren drops every child node.
func (n *Node) RemoveChildren() *Node {
	n.children = nil
	return n
}

// Children returns the ordered child nodes.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// HasChildren reports whether the node has any child.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.children) > 0
}

// SetText replaces the text content.
func (n *Node) SetText(text string) *Node {
	n.text = text
	return n
}

// Text returns the text content.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// SetIndent sets the indentation unit used when pretty printing.
func (n *Node) SetIndent(indent string) *Node {
	n.indent = indent
	return n
}

// Indent returns the indentation unit.
func (n *Node) Indent() string {
	if n == nil {
		return ""
	}
	return n.indent
}

// Walk visits the node and its descendants depth first. Returning false from
// fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || fn == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}
