package dafsa

// joinTransitions collapses chains of single transitions into compound
// labels joined with delimiter. A node is joined away when it is not the
// root, not final, receives exactly one edge and emits exactly one edge.
// Rounds repeat until one performs no joins.
func joinTransitions(root *Node, delimiter string) {
	for joiningRound(root, delimiter) > 0 {
	}
}

func joiningRound(root *Node, delimiter string) int {
	nodes := root.reachable()

	indegree := make(map[*Node]int)
	parent := make(map[*Node]*Node)
	parentLabel := make(map[*Node]string)
	for _, n := range nodes {
		for _, label := range n.labels() {
			target := n.edges[label].node
			indegree[target]++
			parent[target] = n
			parentLabel[target] = label
		}
	}

	// Nodes already touched this round; joining through one would
	// invalidate the degree counts computed above.
	used := make(map[*Node]bool)

	joins := 0
	for _, mid := range nodes {
		if mid == root || mid.final {
			continue
		}
		if indegree[mid] != 1 || len(mid.edges) != 1 {
			continue
		}

		src := parent[mid]
		labelFrom := parentLabel[mid]
		labelTo := mid.labels()[0]
		out := mid.edges[labelTo]

		if used[src] || used[mid] || used[out.node] {
			continue
		}
		used[src] = true
		used[mid] = true
		used[out.node] = true

		src.edges[labelFrom+delimiter+labelTo] = &Edge{node: out.node, weight: out.weight}
		delete(src.edges, labelFrom)
		joins++
	}

	return joins
}
