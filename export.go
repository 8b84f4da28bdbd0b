package dafsa

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/emicklei/dot"
)

// DOTOptions controls DOT generation.
type DOTOptions struct {
	// LabelNodes renders node ids as labels instead of blank nodes.
	LabelNodes bool
	// WeightScale scales edge pen widths relative to edge weight.
	// Zero means the default of 1.5.
	WeightScale float64
}

func (o DOTOptions) scale() float64 {
	if o.WeightScale == 0 {
		return 1.5
	}
	return o.WeightScale
}

// ToDOT returns GraphViz source for the display graph. Node shape and
// size are keyed to finality and weight, edges are labeled and scaled by
// their weight.
func (d *DAFSA) ToDOT(opts DOTOptions) string {
	nodes := d.Nodes()

	maxWeight := 1
	for _, n := range nodes {
		if n.weight > maxWeight {
			maxWeight = n.weight
		}
	}

	g := dot.NewGraph(dot.Directed)
	byID := make(map[int]dot.Node, len(nodes))
	for _, n := range nodes {
		gn := g.Node(strconv.Itoa(n.id))
		styleNode(gn, opts, n.id, n == d.displayRoot(), n.final, n.weight, maxWeight)
		byID[n.id] = gn
	}
	for _, n := range nodes {
		for _, e := range n.Edges() {
			g.Edge(byID[n.id], byID[e.Target.id]).
				Attr("label", e.Label).
				Attr("penwidth", fmt.Sprintf("%d", int(float64(e.Weight)*opts.scale())))
		}
	}
	return g.String()
}

// ToDOT returns GraphViz source for the compacted array. Only entries
// reachable from the root entry are rendered.
func (a *CompactArray) ToDOT(opts DOTOptions) string {
	maxWeight := 1
	for _, e := range a.entries {
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}

	g := dot.NewGraph(dot.Directed)
	rootIdx := len(a.entries) - 1

	node := func(idx int) dot.Node {
		gn := g.Node(strconv.Itoa(idx))
		e := a.entries[idx]
		styleNode(gn, opts, idx, idx == rootIdx, e.Terminal, e.Weight, maxWeight)
		return gn
	}

	visited := map[int]bool{rootIdx: true}
	toVisit := []int{rootIdx}
	for len(toVisit) > 0 {
		idx := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		for _, child := range a.group(a.entries[idx].Child) {
			e := a.entries[child]
			g.Edge(node(idx), node(child)).
				Attr("label", e.Value).
				Attr("penwidth", fmt.Sprintf("%d", int(float64(e.Weight)*opts.scale())))
			if !visited[child] {
				visited[child] = true
				toVisit = append(toVisit, child)
			}
		}
	}
	return g.String()
}

func styleNode(gn dot.Node, opts DOTOptions, id int, isRoot, final bool, weight, maxWeight int) {
	label := ""
	if opts.LabelNodes {
		label = strconv.Itoa(id)
	}
	shape := "circle"
	switch {
	case isRoot:
		shape = "doubleoctagon"
	case final:
		shape = "doublecircle"
	}
	gn.Attr("label", label).
		Attr("shape", shape).
		Attr("style", "filled").
		Attr("width", fmt.Sprintf("%.2f", math.Sqrt(float64(weight)/float64(maxWeight))))
}

// WriteGML writes the reachable part of the array as a GML graph for
// interchange with external graph tools.
func (a *CompactArray) WriteGML(w io.Writer) error {
	rootIdx := len(a.entries) - 1

	var nodes []int
	var edges [][2]int
	visited := map[int]bool{rootIdx: true}
	toVisit := []int{rootIdx}
	nodes = append(nodes, rootIdx)
	for len(toVisit) > 0 {
		idx := toVisit[len(toVisit)-1]
		toVisit = toVisit[:len(toVisit)-1]
		for _, child := range a.group(a.entries[idx].Child) {
			edges = append(edges, [2]int{idx, child})
			if !visited[child] {
				visited[child] = true
				nodes = append(nodes, child)
				toVisit = append(toVisit, child)
			}
		}
	}

	if _, err := fmt.Fprintln(w, "graph ["); err != nil {
		return err
	}
	fmt.Fprintln(w, "  directed 1")
	for _, idx := range nodes {
		e := a.entries[idx]
		terminal := 0
		if e.Terminal {
			terminal = 1
		}
		fmt.Fprintf(w, "  node [\n    id %d\n    label %q\n    terminal %d\n    weight %d\n  ]\n",
			idx, e.Value, terminal, e.Weight)
	}
	for _, edge := range edges {
		fmt.Fprintf(w, "  edge [\n    source %d\n    target %d\n    label %q\n  ]\n",
			edge[0], edge[1], a.entries[edge[1]].Value)
	}
	_, err := fmt.Fprintln(w, "]")
	return err
}
