package dafsa

import (
	"fmt"
	"strings"
)

// Wildcard meta-elements accepted by Search. They extend the pattern
// alphabet; they can never be elements of the automaton itself.
const (
	// WildcardOne matches exactly one arbitrary element.
	WildcardOne = "?"
	// WildcardAny matches zero or more arbitrary elements.
	WildcardAny = "*"
)

// normalizePattern validates a wildcard pattern against the alphabet and
// canonicalizes consecutive wildcard runs (** -> *, ?? -> ?, *? -> *) to
// bound backtracking. A '?' immediately followed by '*' is rejected, as
// is any element outside the alphabet.
func normalizePattern(pattern []string, alphabet map[string]bool) ([]string, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	var out []string
	last := func() string {
		if len(out) == 0 {
			return ""
		}
		return out[len(out)-1]
	}
	for _, element := range pattern {
		switch element {
		case WildcardOne:
			if last() == WildcardOne || last() == WildcardAny {
				continue
			}
			out = append(out, element)
		case WildcardAny:
			if last() == WildcardAny {
				continue
			}
			if last() == WildcardOne {
				return nil, fmt.Errorf("%w: '?' immediately followed by '*'", ErrInvalidPattern)
			}
			out = append(out, element)
		default:
			if !alphabet[element] {
				return nil, fmt.Errorf("%w: element %q not in alphabet", ErrInvalidPattern, element)
			}
			out = append(out, element)
		}
	}
	return out, nil
}

func isLiteral(pattern []string) bool {
	for _, element := range pattern {
		if element == WildcardOne || element == WildcardAny {
			return false
		}
	}
	return true
}

func toSet(elements []string) map[string]bool {
	set := make(map[string]bool, len(elements))
	for _, element := range elements {
		set[element] = true
	}
	return set
}

// matchSet accumulates search results, dropping duplicates. The same
// sequence can be reached through different wildcard splits, e.g. with
// two '*' in one pattern.
type matchSet struct {
	matches []Match
	seen    map[string]bool
}

func newMatchSet() *matchSet {
	return &matchSet{seen: make(map[string]bool)}
}

func (m *matchSet) add(seq []string, count int) {
	key := strings.Join(seq, "\x00")
	if m.seen[key] {
		return
	}
	m.seen[key] = true
	m.matches = append(m.matches, Match{Sequence: seq, Count: count})
}

// Search returns every sequence matched by the wildcard pattern, with its
// occurrence count. Pure-literal patterns bypass backtracking entirely.
func (d *DAFSA) Search(pattern []string) ([]Match, error) {
	d.checkFinished()
	pat, err := normalizePattern(pattern, toSet(d.Alphabet()))
	if err != nil {
		return nil, err
	}
	if isLiteral(pat) {
		if node, ok := d.Lookup(pat); ok {
			return []Match{{Sequence: pat, Count: node.weight}}, nil
		}
		return nil, nil
	}
	out := newMatchSet()
	d.wildcardWalk(d.root, pat, 0, nil, out)
	return out.matches, nil
}

func (d *DAFSA) wildcardWalk(node *Node, pattern []string, idx int, cur []string, out *matchSet) {
	if node.final && idx >= len(pattern) && len(cur) > 0 {
		out.add(cur, node.weight)
		return
	}
	if idx >= len(pattern) {
		return
	}
	switch pattern[idx] {
	case WildcardOne:
		for _, label := range node.labels() {
			d.wildcardWalk(node.edges[label].node, pattern, idx+1, appendElement(cur, label), out)
		}
	case WildcardAny:
		// Stay at this node consuming nothing, or consume one edge
		// without advancing the pattern.
		d.wildcardWalk(node, pattern, idx+1, cur, out)
		for _, label := range node.labels() {
			d.wildcardWalk(node.edges[label].node, pattern, idx, appendElement(cur, label), out)
		}
	default:
		if e, ok := node.edges[pattern[idx]]; ok {
			d.wildcardWalk(e.node, pattern, idx+1, appendElement(cur, pattern[idx]), out)
		}
	}
}

// SearchWithPrefix returns every sequence starting with prefix.
func (d *DAFSA) SearchWithPrefix(prefix []string) ([]Match, error) {
	d.checkFinished()
	if len(prefix) == 0 {
		return nil, ErrEmptyPattern
	}
	node, ok := d.LookupPrefix(prefix)
	if !ok {
		return nil, nil
	}
	out := newMatchSet()
	d.wildcardWalk(node, []string{WildcardAny}, 0, append([]string(nil), prefix...), out)
	return out.matches, nil
}

// Search returns every sequence in the array matched by the wildcard
// pattern. Results follow layout order.
func (a *CompactArray) Search(pattern []string) ([]Match, error) {
	pat, err := normalizePattern(pattern, toSet(a.alphabet))
	if err != nil {
		return nil, err
	}
	if isLiteral(pat) {
		if entry, ok := a.Lookup(pat); ok {
			return []Match{{Sequence: pat, Count: entry.Weight}}, nil
		}
		return nil, nil
	}
	root := a.entries[len(a.entries)-1]
	out := newMatchSet()
	a.wildcardWalk(root.Child, false, 0, pat, 0, nil, out)
	return out.matches, nil
}

// wildcardWalk mirrors the graph walk; an automaton state is represented
// by the children group index plus the flags of the entry it was reached
// through.
func (a *CompactArray) wildcardWalk(group int, terminal bool, weight int, pattern []string, idx int, cur []string, out *matchSet) {
	if terminal && idx >= len(pattern) && len(cur) > 0 {
		out.add(cur, weight)
		return
	}
	if idx >= len(pattern) {
		return
	}
	switch pattern[idx] {
	case WildcardOne:
		for _, i := range a.group(group) {
			e := a.entries[i]
			a.wildcardWalk(e.Child, e.Terminal, e.Weight, pattern, idx+1, appendElement(cur, e.Value), out)
		}
	case WildcardAny:
		a.wildcardWalk(group, terminal, weight, pattern, idx+1, cur, out)
		for _, i := range a.group(group) {
			e := a.entries[i]
			a.wildcardWalk(e.Child, e.Terminal, e.Weight, pattern, idx, appendElement(cur, e.Value), out)
		}
	default:
		if i, ok := a.find(group, pattern[idx]); ok {
			e := a.entries[i]
			a.wildcardWalk(e.Child, e.Terminal, e.Weight, pattern, idx+1, appendElement(cur, e.Value), out)
		}
	}
}

// SearchWithPrefix returns every sequence in the array starting with prefix.
func (a *CompactArray) SearchWithPrefix(prefix []string) ([]Match, error) {
	if len(prefix) == 0 {
		return nil, ErrEmptyPattern
	}
	entry, ok := a.LookupPrefix(prefix)
	if !ok {
		return nil, nil
	}
	out := newMatchSet()
	a.wildcardWalk(entry.Child, entry.Terminal, entry.Weight,
		[]string{WildcardAny}, 0, append([]string(nil), prefix...), out)
	return out.matches, nil
}

// group returns the entry indices of the sibling group starting at start.
func (a *CompactArray) group(start int) []int {
	if start == 0 {
		return nil
	}
	var out []int
	for idx := start; ; idx++ {
		out = append(out, idx)
		if a.entries[idx].GroupEnd {
			return out
		}
	}
}

// appendElement copies before appending; walk branches must not share a
// backing array.
func appendElement(seq []string, element string) []string {
	return append(append(make([]string, 0, len(seq)+1), seq...), element)
}
