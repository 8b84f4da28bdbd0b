package dafsa_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milden6/dafsa"
)

func compactWords(t *testing.T, words []string, opts ...dafsa.Option) *dafsa.CompactArray {
	t.Helper()
	d := buildWords(t, words, opts...)
	arr, err := d.CompactChecked()
	require.NoError(t, err)
	return arr
}

func sortedSequences(a *dafsa.CompactArray) [][]string {
	seqs := a.Sequences()
	slices.SortFunc(seqs, slices.Compare)
	return seqs
}

func TestCompactRoundTrip(t *testing.T) {
	words := []string{"tap", "taps", "top", "tops", "dib", "dibs"}
	d := buildWords(t, words)
	arr := compactWords(t, words)

	assert.Equal(t, d.Sequences(), sortedSequences(arr))
	assert.Equal(t, d.Alphabet(), arr.Alphabet())
	assert.Equal(t, len(words), arr.NumSequences())
}

func TestCompactLayout(t *testing.T) {
	arr := compactWords(t, []string{"tap", "taps", "top", "tops"})

	// index 0 is the end-of-group sentinel, the last index the root entry
	sentinel := arr.Entry(0)
	assert.Equal(t, dafsa.ArrayEntry{GroupEnd: true}, sentinel)

	root := arr.Entry(arr.Len() - 1)
	assert.Empty(t, root.Value)
	assert.True(t, root.GroupEnd)
	assert.False(t, root.Terminal)
	assert.NotZero(t, root.Child)

	// every child pointer resolves to a sibling group: scanning forward
	// from it reaches a GroupEnd without leaving the payload region
	for i := 1; i < arr.Len()-1; i++ {
		e := arr.Entry(i)
		require.NotEmpty(t, e.Value, "entry %d", i)
		require.Less(t, e.Child, arr.Len()-1, "entry %d", i)
		for j := e.Child; ; j++ {
			require.Less(t, j, arr.Len()-1, "group of entry %d runs past the payload", i)
			if arr.Entry(j).GroupEnd {
				break
			}
			require.NotEmpty(t, arr.Entry(j).Value, "entry %d points into synthetic entries", i)
		}
	}
}

func TestCompactDeterministic(t *testing.T) {
	words := []string{"deer", "deers", "doe", "does", "dove", "doves"}
	a := compactWords(t, words)
	b := compactWords(t, words)
	assert.Equal(t, a.Entries(), b.Entries())
}

func TestCompactSharedGroups(t *testing.T) {
	// "tap"/"top" and "taps"/"tops" share their suffix automaton, so the
	// compacted form must not exceed one entry per distinct transition
	// plus the two synthetic entries.
	d := buildWords(t, []string{"tap", "taps", "top", "tops"})
	arr := compactWords(t, []string{"tap", "taps", "top", "tops"})
	assert.LessOrEqual(t, arr.Len(), d.NumEdges()+2)
}

func TestCompactEmptySequence(t *testing.T) {
	d, err := dafsa.FromSequences([][]string{{}, {"a"}})
	require.NoError(t, err)
	arr, err := d.CompactChecked()
	require.NoError(t, err)

	assert.True(t, arr.Entry(arr.Len()-1).Terminal)
	assert.True(t, arr.Contains(nil))
	assert.Equal(t, d.Sequences(), sortedSequences(arr))
}

func TestCompactDuplicateWeights(t *testing.T) {
	arr := compactWords(t, []string{"tap", "tap", "taps"})

	entry, ok := arr.Lookup(dafsa.Tokenize("taps"))
	require.True(t, ok)
	assert.Equal(t, 1, entry.Weight)

	// all three sequences run through the "tap" node
	entry, ok = arr.Lookup(dafsa.Tokenize("tap"))
	require.True(t, ok)
	assert.Equal(t, 3, entry.Weight)

	root := arr.Entry(arr.Len() - 1)
	assert.Equal(t, 3, root.Weight)
	assert.Equal(t, 3, arr.NumSequences())
}

func TestCompactSingleSequence(t *testing.T) {
	arr := compactWords(t, []string{"a"})

	// sentinel, the single "a" entry, root
	assert.Equal(t, 3, arr.Len())
	assert.True(t, arr.Contains([]string{"a"}))
	assert.False(t, arr.Contains([]string{"a", "a"}))
}

func TestCompactUnminimizedTrie(t *testing.T) {
	// canonicalization folds equal subtrees even when the graph form was
	// built as a plain trie, so both forms compact to the same sequences
	words := []string{"dib", "tip", "tips", "top"}
	trie := compactWords(t, words, dafsa.Minimize(false))
	minimized := compactWords(t, words)

	assert.Equal(t, sortedSequences(minimized), sortedSequences(trie))
	assert.Equal(t, minimized.Len(), trie.Len())
}

func TestCompactString(t *testing.T) {
	arr := compactWords(t, []string{"ab"})
	s := arr.String()
	assert.Contains(t, s, "CompactArray with")
	assert.Contains(t, s, `"a"`)
	assert.Contains(t, s, `"b"`)
}
