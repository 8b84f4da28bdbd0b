package dafsa

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// ArrayEntry is one slot of the compacted array. Value is empty only for
// the two synthetic entries (the end-of-group sentinel at index 0 and the
// root entry at the last index). Child is the index of the first entry of
// the target sibling group, or 0 when the target has no children.
type ArrayEntry struct {
	Value    string
	GroupEnd bool
	Terminal bool
	Child    int
	Weight   int
}

// CompactArray is the flat, pointer-free, index-addressed form of a
// minimized automaton. It is immutable once built and safe for
// unsynchronized concurrent reads.
type CompactArray struct {
	entries  []ArrayEntry
	alphabet []string
	numSeqs  int
}

// Len returns the number of entries, synthetic ones included.
func (a *CompactArray) Len() int { return len(a.entries) }

// Entry returns the entry at index i.
func (a *CompactArray) Entry(i int) ArrayEntry { return a.entries[i] }

// Entries returns the entry slice in emission order, which is also the
// canonical serialization order. Callers must not modify it.
func (a *CompactArray) Entries() []ArrayEntry { return a.entries }

// Alphabet returns the distinct elements of the automaton, sorted.
func (a *CompactArray) Alphabet() []string { return a.alphabet }

// NumSequences returns the number of sequences the array was built from,
// duplicates included.
func (a *CompactArray) NumSequences() int { return a.numSeqs }

// cell is one (label, canonical target) pair of a children tuple.
type cell struct {
	label  string
	target *Node
}

func (c cell) key() string {
	return strconv.Quote(c.label) + "#" + strconv.Itoa(c.target.id)
}

func tupleKey(cells []cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.key()
	}
	return strings.Join(parts, ";")
}

// placedGroup is an accepted children tuple with its slot in the array.
type placedGroup struct {
	cells []cell
	start int
	order int
}

// Compact lays the automaton out as a single flat array: one synthetic
// end-of-group entry, then every accepted sibling group as a contiguous
// block with GroupEnd on its last member, then a synthetic root entry.
// Children tuples that are tail-subsets of an already accepted group are
// not re-emitted; they resolve to an offset inside the accepted block.
// Finish is called if it has not been already.
func (d *DAFSA) Compact() *CompactArray {
	d.Finish()

	canon, canonWeight := d.canonicalize()
	rootRep := canon[d.root]

	// Children tuple per canonical node, cells in alphabet order.
	reps := make([]*Node, 0, len(canonWeight))
	for rep := range canonWeight {
		reps = append(reps, rep)
	}
	sort.Slice(reps, func(a, b int) bool { return reps[a].id < reps[b].id })

	tuples := make(map[*Node][]cell, len(reps))
	nodeTuple := make(map[*Node]string, len(reps))
	groups := make(map[string][]cell)
	for _, rep := range reps {
		cells := make([]cell, 0, len(rep.edges))
		for _, label := range rep.labels() {
			cells = append(cells, cell{label, canon[rep.edges[label].node]})
		}
		key := tupleKey(cells)
		tuples[rep] = cells
		nodeTuple[rep] = key
		groups[key] = cells
	}

	// Inverse index from each cell to the tuples containing it, used for
	// the popularity ordering and for finding merge hosts.
	inverse := make(map[string][]string)
	for key, cells := range groups {
		if key == "" {
			continue
		}
		for _, c := range cells {
			inverse[c.key()] = append(inverse[c.key()], key)
		}
	}

	popularity := func(cells []cell) int {
		total := 0
		for _, c := range cells {
			total += len(inverse[c.key()])
		}
		return total
	}

	// Candidate order: size descending, popularity ascending, so the most
	// complex, least shared groups are placed first. The key breaks the
	// remaining ties so the layout is reproducible.
	candidates := make([]string, 0, len(groups))
	for key := range groups {
		if key != "" {
			candidates = append(candidates, key)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := groups[candidates[i]], groups[candidates[j]]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		if pa, pb := popularity(a), popularity(b); pa != pb {
			return pa < pb
		}
		return candidates[i] < candidates[j]
	})

	// Greedy set-cover pass. A candidate that forms the tail of an
	// already accepted group is satisfied by slicing into that block.
	// The heuristic is intentionally greedy, not optimal.
	var accepted []*placedGroup
	byKey := make(map[string]*placedGroup)
	offset := make(map[string]int)
	acceptedBy := make(map[string][]*placedGroup)

	for _, key := range candidates {
		cells := groups[key]

		var hosts []*placedGroup
		seen := make(map[*placedGroup]bool)
		for _, c := range cells {
			for _, pg := range acceptedBy[c.key()] {
				if !seen[pg] {
					seen[pg] = true
					hosts = append(hosts, pg)
				}
			}
		}
		sort.Slice(hosts, func(i, j int) bool { return hosts[i].order < hosts[j].order })

		merged := false
		for _, host := range hosts {
			if isTailOf(cells, host.cells) {
				byKey[key] = host
				offset[key] = len(host.cells) - len(cells)
				merged = true
				break
			}
		}
		if merged {
			continue
		}

		pg := &placedGroup{cells: cells, order: len(accepted)}
		accepted = append(accepted, pg)
		byKey[key] = pg
		for _, c := range cells {
			acceptedBy[c.key()] = append(acceptedBy[c.key()], pg)
		}
	}

	// Layout: assign contiguous index ranges, then resolve pointers.
	pos := 1
	for _, pg := range accepted {
		pg.start = pos
		pos += len(pg.cells)
	}

	groupIndex := func(key string) int {
		if key == "" {
			return 0
		}
		return byKey[key].start + offset[key]
	}

	entries := make([]ArrayEntry, pos+1)
	entries[0] = ArrayEntry{GroupEnd: true}
	for _, pg := range accepted {
		for i, c := range pg.cells {
			entries[pg.start+i] = ArrayEntry{
				Value:    c.label,
				GroupEnd: i == len(pg.cells)-1,
				Terminal: c.target.final,
				Child:    groupIndex(nodeTuple[c.target]),
				Weight:   canonWeight[c.target],
			}
		}
	}
	entries[pos] = ArrayEntry{
		GroupEnd: true,
		Terminal: d.root.final,
		Child:    groupIndex(nodeTuple[rootRep]),
		Weight:   d.root.weight,
	}

	return &CompactArray{entries: entries, alphabet: d.Alphabet(), numSeqs: d.numSeqs}
}

// CompactChecked compacts and then verifies that enumerating the array
// reproduces exactly the sequences expressed by the graph. A mismatch is
// an internal invariant violation, not a recoverable condition.
func (d *DAFSA) CompactChecked() (*CompactArray, error) {
	arr := d.Compact()

	want := d.Sequences()
	got := arr.Sequences()
	slices.SortFunc(got, slices.Compare)
	if !slices.EqualFunc(want, got, func(a, b []string) bool { return slices.Compare(a, b) == 0 }) {
		return nil, fmt.Errorf("%w: %d sequences in, %d out", ErrCheckFailed, len(want), len(got))
	}
	return arr, nil
}

// isTailOf reports whether sub is a strict alphabet-order tail of cells.
func isTailOf(sub, cells []cell) bool {
	if len(sub) >= len(cells) {
		return false
	}
	tail := cells[len(cells)-len(sub):]
	for i := range sub {
		if sub[i] != tail[i] {
			return false
		}
	}
	return true
}

// canonicalize maps every reachable node to a canonical representative by
// structural signature, recognizing equal children tuples by identity
// afterwards. On an already minimized graph this is the identity mapping.
// Weights of merged nodes accumulate onto the representative (kept in a
// side map; the graph itself is not mutated).
func (d *DAFSA) canonicalize() (map[*Node]*Node, map[*Node]int) {
	canon := make(map[*Node]*Node)
	weight := make(map[*Node]int)
	bySig := make(map[string]*Node)

	var walk func(n *Node) *Node
	walk = func(n *Node) *Node {
		if rep, ok := canon[n]; ok {
			return rep
		}
		var sb strings.Builder
		if n.final {
			sb.WriteByte('!')
		}
		for _, label := range n.labels() {
			target := walk(n.edges[label].node)
			sb.WriteByte('_')
			sb.WriteString(strconv.Quote(label))
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(target.id))
		}
		sig := sb.String()
		rep, ok := bySig[sig]
		if !ok {
			rep = n
			bySig[sig] = n
		}
		canon[n] = rep
		weight[rep] += n.weight
		return rep
	}
	walk(d.root)
	return canon, weight
}

// Sequences enumerates every sequence expressed by the array, starting
// from the group the root entry points at. The empty sequence is included
// when the root entry is terminal. Results follow layout order, not
// lexicographic order.
func (a *CompactArray) Sequences() [][]string {
	var out [][]string
	root := a.entries[len(a.entries)-1]
	if root.Terminal {
		out = append(out, []string{})
	}
	a.extract(root.Child, nil, &out)
	return out
}

func (a *CompactArray) extract(idx int, carry []string, out *[][]string) {
	for {
		e := a.entries[idx]
		if e.Value == "" {
			return
		}
		seq := append(append([]string(nil), carry...), e.Value)
		a.extract(e.Child, seq, out)
		if e.Terminal {
			*out = append(*out, seq)
		}
		if e.GroupEnd {
			return
		}
		idx++
	}
}

// String returns a table dump of the array.
func (a *CompactArray) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CompactArray with %d entries (%d sequences)", len(a.entries), a.numSeqs)
	for i, e := range a.entries {
		fmt.Fprintf(&sb, "\n%4d %8q end=%-5v term=%-5v child=%-4d w=%d",
			i, e.Value, e.GroupEnd, e.Terminal, e.Child, e.Weight)
	}
	return sb.String()
}
