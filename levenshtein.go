package dafsa

// SearchWithinDistance returns every sequence whose Levenshtein distance
// to word is at most maxDist, with occurrence counts. The classic DP row
// is propagated along a depth-first walk; a branch is pruned as soon as
// the minimum value in its row exceeds maxDist, since the row can only
// grow from there.
func (d *DAFSA) SearchWithinDistance(word []string, maxDist int) ([]Match, error) {
	d.checkFinished()
	if len(word) == 0 {
		return nil, ErrEmptyPattern
	}
	if maxDist < 0 {
		return nil, ErrInvalidDistance
	}

	row := make([]int, len(word)+1)
	for i := range row {
		row[i] = i
	}

	var matches []Match
	for _, label := range d.root.labels() {
		e := d.root.edges[label]
		d.distanceWalk(word, e.node, label, []string{label}, row, maxDist, &matches)
	}
	return matches, nil
}

func (d *DAFSA) distanceWalk(word []string, node *Node, label string, cur []string, row []int, maxDist int, matches *[]Match) {
	curRow := nextRow(word, label, row)

	if curRow[len(curRow)-1] <= maxDist && node.final {
		*matches = append(*matches, Match{Sequence: cur, Count: node.weight})
	}

	if minValue(curRow) > maxDist {
		return
	}
	for _, next := range node.labels() {
		e := node.edges[next]
		d.distanceWalk(word, e.node, next, appendElement(cur, next), curRow, maxDist, matches)
	}
}

// SearchWithinDistance is the array form of the bounded edit-distance
// search.
func (a *CompactArray) SearchWithinDistance(word []string, maxDist int) ([]Match, error) {
	if len(word) == 0 {
		return nil, ErrEmptyPattern
	}
	if maxDist < 0 {
		return nil, ErrInvalidDistance
	}

	row := make([]int, len(word)+1)
	for i := range row {
		row[i] = i
	}

	var matches []Match
	root := a.entries[len(a.entries)-1]
	for _, i := range a.group(root.Child) {
		a.distanceWalk(word, i, []string{a.entries[i].Value}, row, maxDist, &matches)
	}
	return matches, nil
}

func (a *CompactArray) distanceWalk(word []string, idx int, cur []string, row []int, maxDist int, matches *[]Match) {
	e := a.entries[idx]
	curRow := nextRow(word, e.Value, row)

	if curRow[len(curRow)-1] <= maxDist && e.Terminal {
		*matches = append(*matches, Match{Sequence: cur, Count: e.Weight})
	}

	if minValue(curRow) > maxDist {
		return
	}
	for _, next := range a.group(e.Child) {
		a.distanceWalk(word, next, appendElement(cur, a.entries[next].Value), curRow, maxDist, matches)
	}
}

// nextRow computes one DP row from the parent's row for the edge labeled
// element, using the cost-1 insertion/deletion/substitution recurrence.
func nextRow(word []string, element string, row []int) []int {
	curRow := make([]int, len(word)+1)
	curRow[0] = row[0] + 1
	for col := 1; col <= len(word); col++ {
		ins := curRow[col-1] + 1
		del := row[col] + 1
		sub := row[col-1]
		if word[col-1] != element {
			sub++
		}
		curRow[col] = min(ins, del, sub)
	}
	return curRow
}

func minValue(row []int) int {
	m := row[0]
	for _, v := range row[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
