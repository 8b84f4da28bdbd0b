package dafsa

// Match is one search result. Count carries the occurrence count from the
// weight annotation and is zero when weights were not collected.
type Match struct {
	Sequence []string
	Count    int
}

// Lookup walks the query graph by successive elements and returns the
// terminal node, so callers can read its weight. The empty sequence is
// found only if the root itself is final.
func (d *DAFSA) Lookup(seq []string) (*Node, bool) {
	d.checkFinished()
	node := d.root
	for _, element := range seq {
		e, ok := node.edges[element]
		if !ok {
			return nil, false
		}
		node = e.node
	}
	if !node.final {
		return nil, false
	}
	return node, true
}

// Contains reports whether the exact sequence is expressed by the graph.
func (d *DAFSA) Contains(seq []string) bool {
	_, ok := d.Lookup(seq)
	return ok
}

// LookupPrefix walks the graph without requiring a final node and returns
// the node the prefix ends at.
func (d *DAFSA) LookupPrefix(prefix []string) (*Node, bool) {
	d.checkFinished()
	node := d.root
	for _, element := range prefix {
		e, ok := node.edges[element]
		if !ok {
			return nil, false
		}
		node = e.node
	}
	return node, true
}

// ContainsPrefix reports whether some expressed sequence starts with prefix.
func (d *DAFSA) ContainsPrefix(prefix []string) bool {
	_, ok := d.LookupPrefix(prefix)
	return ok
}

// Lookup walks the array by successive elements and returns the terminal
// entry. Unlike the graph form, the empty sequence is always contained
// here: it resolves to the synthetic root entry, which stands for the
// identity element of the array.
func (a *CompactArray) Lookup(seq []string) (ArrayEntry, bool) {
	root := a.entries[len(a.entries)-1]
	if len(seq) == 0 {
		return root, true
	}
	group := root.Child
	var entry ArrayEntry
	for _, element := range seq {
		idx, ok := a.find(group, element)
		if !ok {
			return ArrayEntry{}, false
		}
		entry = a.entries[idx]
		group = entry.Child
	}
	if !entry.Terminal {
		return ArrayEntry{}, false
	}
	return entry, true
}

// Contains reports whether the exact sequence is expressed by the array.
func (a *CompactArray) Contains(seq []string) bool {
	_, ok := a.Lookup(seq)
	return ok
}

// LookupPrefix walks the array without requiring a terminal entry.
func (a *CompactArray) LookupPrefix(prefix []string) (ArrayEntry, bool) {
	root := a.entries[len(a.entries)-1]
	if len(prefix) == 0 {
		return root, true
	}
	group := root.Child
	var entry ArrayEntry
	for _, element := range prefix {
		idx, ok := a.find(group, element)
		if !ok {
			return ArrayEntry{}, false
		}
		entry = a.entries[idx]
		group = entry.Child
	}
	return entry, true
}

// ContainsPrefix reports whether some expressed sequence starts with prefix.
func (a *CompactArray) ContainsPrefix(prefix []string) bool {
	_, ok := a.LookupPrefix(prefix)
	return ok
}

// find scans the sibling group starting at group for the entry labeled
// element. Group 0 is the end sentinel and has no members.
func (a *CompactArray) find(group int, element string) (int, bool) {
	if group == 0 {
		return 0, false
	}
	for idx := group; ; idx++ {
		e := a.entries[idx]
		if e.Value == element {
			return idx, true
		}
		if e.GroupEnd {
			return 0, false
		}
	}
}
