package memdom

import (
	"fmt"
	"io"

	g "maragu.dev/gomponents"
)

// HTML converts the subtree under n into a gomponents node. Props become
// attributes; className is written as class, true booleans as bare
// attributes, false and nil are left out.
func HTML(n *Node) g.Node {
	if n.IsText() {
		return g.Text(n.Text())
	}

	nodes := make([]g.Node, 0, len(n.props)+len(n.children))
	for _, k := range n.PropKeys() {
		if attr, ok := htmlAttr(k, n.props[k]); ok {
			nodes = append(nodes, attr)
		}
	}
	for _, c := range n.children {
		nodes = append(nodes, HTML(c))
	}
	return g.El(n.Tag, nodes...)
}

func htmlAttr(key string, value any) (g.Node, bool) {
	if key == NodeValueKey {
		return nil, false
	}
	if key == "className" {
		key = "class"
	}
	switch v := value.(type) {
	case nil:
		return nil, false
	case bool:
		if !v {
			return nil, false
		}
		return g.Attr(key), true
	case string:
		return g.Attr(key, v), true
	default:
		return g.Attr(key, fmt.Sprint(v)), true
	}
}

// WriteHTML renders the subtree under n to w.
func WriteHTML(w io.Writer, n *Node) error {
	return HTML(n).Render(w)
}
