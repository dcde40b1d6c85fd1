package memdom

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the visible state: every container subtree with tags, props
// and listener counts. Detached nodes do not contribute.
func (d *Document) Digest() uint64 {
	h := xxhash.New()
	for _, c := range d.containers {
		digestNode(h, c)
	}
	return h.Sum64()
}

// DigestOf hashes the subtree under n.
func DigestOf(n *Node) uint64 {
	h := xxhash.New()
	digestNode(h, n)
	return h.Sum64()
}

type frame struct {
	node  *Node
	depth int
}

func digestNode(h *xxhash.Digest, root *Node) {
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node

		fmt.Fprintf(h, "%d<%s", f.depth, n.Tag)
		for _, k := range n.PropKeys() {
			fmt.Fprintf(h, " %s=%#v", k, n.props[k])
		}
		events := make([]string, 0, len(n.listeners))
		for e := range n.listeners {
			events = append(events, e)
		}
		sort.Strings(events)
		for _, e := range events {
			fmt.Fprintf(h, " @%s:%d", e, len(n.listeners[e]))
		}
		fmt.Fprintf(h, " /%d>", len(n.children))

		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: n.children[i], depth: f.depth + 1})
		}
	}
}
