package dafsa

// collectWeights replays every added sequence over the minimized graph,
// incrementing the traversed edge and landed node counters. It must run
// only after the final fold, so that shared nodes accumulate a single
// count. Purely an annotation pass; no structure changes.
func (d *DAFSA) collectWeights() {
	for _, seq := range d.seqs {
		node := d.root
		node.weight++
		for _, element := range seq {
			e := node.edges[element]
			e.weight++
			node = e.node
			node.weight++
		}
	}
}
