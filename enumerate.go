package dafsa

import (
	"fmt"
	"strings"
)

// Sequences enumerates every distinct sequence expressed by the query
// graph, in lexicographic order. The empty sequence is included when the
// root is final.
func (d *DAFSA) Sequences() [][]string {
	d.checkFinished()
	var out [][]string
	if d.root.final {
		out = append(out, []string{})
	}
	enumerate(d.root, nil, &out)
	return out
}

func enumerate(n *Node, carry []string, out *[][]string) {
	for _, label := range n.labels() {
		target := n.edges[label].node
		seq := append(append([]string(nil), carry...), label)
		if target.final {
			*out = append(*out, seq)
		}
		enumerate(target, seq, out)
	}
}

// String returns a readable multi-line dump of the display graph.
func (d *DAFSA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DAFSA with %d nodes and %d edges (%d sequences)",
		d.NumNodes(), d.NumEdges(), d.NumSequences())
	for _, n := range d.Nodes() {
		marker := " "
		if n.final {
			marker = "F"
		}
		fmt.Fprintf(&sb, "\n  +-- #%d %s w=%d:", n.id, marker, n.weight)
		for _, e := range n.Edges() {
			fmt.Fprintf(&sb, " %q->#%d/%d", e.Label, e.Target.id, e.Weight)
		}
	}
	return sb.String()
}
