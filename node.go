package dafsa

import (
	"sort"
	"strconv"
	"strings"
)

// Node is a state in the automaton. During construction nodes are mutated
// in place (edges retargeted by the minimizer, weights incremented by the
// weight collector); after Finish the graph should be treated as read-only.
type Node struct {
	id     int
	edges  map[string]*Edge
	final  bool
	weight int
}

// Edge connects a node to one of its children. An edge is owned by exactly
// one source node; its weight counts how many added sequences traverse it.
type Edge struct {
	node   *Node
	weight int
}

func newNode(id int) *Node {
	return &Node{id: id, edges: make(map[string]*Edge)}
}

// ID returns the process-unique identifier assigned at creation.
func (n *Node) ID() int { return n.id }

// Final reports whether a sequence ends exactly at this node.
func (n *Node) Final() bool { return n.final }

// Weight returns the number of added sequences whose path passes through
// this node. It is zero unless weights were collected.
func (n *Node) Weight() int { return n.weight }

// Target returns the node the edge points to.
func (e *Edge) Target() *Node { return e.node }

// Weight returns the number of added sequences that traverse the edge.
func (e *Edge) Weight() int { return e.weight }

// EdgeInfo describes one outgoing transition. It is the unit exposed to
// visualization adapters.
type EdgeInfo struct {
	Label  string
	Target *Node
	Weight int
}

// Edges returns the outgoing transitions sorted by label.
func (n *Node) Edges() []EdgeInfo {
	out := make([]EdgeInfo, 0, len(n.edges))
	for _, label := range n.labels() {
		e := n.edges[label]
		out = append(out, EdgeInfo{Label: label, Target: e.node, Weight: e.weight})
	}
	return out
}

// labels returns the edge labels in sorted order. All deterministic
// traversals go through this.
func (n *Node) labels() []string {
	labels := make([]string, 0, len(n.edges))
	for label := range n.edges {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// signature returns the canonical structural description of the node:
// its final flag plus the sorted (label, target-id) pairs. Weight is
// excluded so that equal signatures are safe to merge. Labels are quoted
// so arbitrary tokens cannot collide with the separators.
func (n *Node) signature() string {
	var sb strings.Builder
	if n.final {
		sb.WriteByte('!')
	}
	for _, label := range n.labels() {
		sb.WriteByte('_')
		sb.WriteString(strconv.Quote(label))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(n.edges[label].node.id))
	}
	return sb.String()
}

// collect appends every node reachable from n to seen, keyed by identity.
func (n *Node) collect(seen map[*Node]bool, out *[]*Node) {
	if seen[n] {
		return
	}
	seen[n] = true
	*out = append(*out, n)
	for _, label := range n.labels() {
		n.edges[label].node.collect(seen, out)
	}
}

// reachable returns every node reachable from n, sorted by id.
func (n *Node) reachable() []*Node {
	var out []*Node
	n.collect(make(map[*Node]bool), &out)
	sort.Slice(out, func(a, b int) bool { return out[a].id < out[b].id })
	return out
}

// clone deep-copies the subgraph below n, preserving sharing.
func (n *Node) clone(copies map[*Node]*Node) *Node {
	if c, ok := copies[n]; ok {
		return c
	}
	c := &Node{id: n.id, final: n.final, weight: n.weight, edges: make(map[string]*Edge, len(n.edges))}
	copies[n] = c
	for label, e := range n.edges {
		c.edges[label] = &Edge{node: e.node.clone(copies), weight: e.weight}
	}
	return c
}
