package dom

import (
	"html"
	"io"
	"strings"
)

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "source": {}, "track": {}, "wbr": {},
}

// Render writes the node and its descendants as markup. depth controls the
// starting indentation level; nodes without an indent inherit their parent's
// and render inline when none is set anywhere up the tree.
func (n *Node) Render(w io.Writer, depth int) error {
	if n == nil {
		return nil
	}
	_, err := io.WriteString(w, n.String(depth))
	return err
}

// String renders the node starting at the supplied depth.
func (n *Node) String(depth int) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.write(&b, depth, "")
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int, inherited string) {
	indent := n.indent
	if indent == "" {
		indent = inherited
	}
	prefix := strings.Repeat(indent, depth)

	if n.raw {
		b.WriteString(prefix)
		b.WriteString(n.text)
		if indent != "" {
			b.WriteByte('\n')
		}
		return
	}

	b.WriteString(prefix)
	b.WriteByte('<')
	b.WriteString(n.tag)
	for _, attr := range n.Attributes() {
		b.WriteByte(' ')
		b.WriteString(attr.Name)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteByte('"')
	}

	if _, void := voidElements[n.tag]; void {
		b.WriteString(" />")
		if indent != "" {
			b.WriteByte('\n')
		}
		return
	}
	b.WriteByte('>')

	if n.text != "" {
		b.WriteString(html.EscapeString(n.text))
	}
	if len(n.children) > 0 {
		if indent != "" {
			b.WriteByte('\n')
		}
		for _, child := range n.children {
			child.write(b, depth+1, indent)
		}
		b.WriteString(prefix)
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
	if indent != "" {
		b.WriteByte('\n')
	}
}
