package dafsa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milden6/dafsa"
)

func buildWords(t *testing.T, words []string, opts ...dafsa.Option) *dafsa.DAFSA {
	t.Helper()
	d, err := dafsa.FromWords(words, opts...)
	require.NoError(t, err)
	return d
}

func TestSharedSuffixesFold(t *testing.T) {
	d := buildWords(t, []string{"tap", "taps", "top", "tops"})

	assert.Equal(t, 4, d.NumSequences())
	assert.Equal(t, 5, d.NumNodes())
	assert.Equal(t, 5, d.NumEdges())

	assert.True(t, d.Contains(dafsa.Tokenize("tap")))
	assert.True(t, d.Contains(dafsa.Tokenize("tops")))
	assert.False(t, d.Contains(dafsa.Tokenize("ta")), "prefixes of entries are not matches")
	assert.False(t, d.Contains(dafsa.Tokenize("topless")))
	assert.True(t, d.ContainsPrefix(dafsa.Tokenize("ta")))
	assert.False(t, d.ContainsPrefix(dafsa.Tokenize("x")))
}

func TestMinimizedSmallerThanTrie(t *testing.T) {
	words := []string{"dib", "tip", "tips", "top"}

	trie := buildWords(t, words, dafsa.Minimize(false))
	minimized := buildWords(t, words)

	assert.Equal(t, 10, trie.NumNodes())
	assert.Less(t, minimized.NumNodes(), trie.NumNodes())

	for _, w := range words {
		assert.True(t, trie.Contains(dafsa.Tokenize(w)), w)
		assert.True(t, minimized.Contains(dafsa.Tokenize(w)), w)
	}
}

func TestDuplicatesOnlyAffectWeights(t *testing.T) {
	once := buildWords(t, []string{"tap", "taps"})
	twice := buildWords(t, []string{"tap", "taps", "taps"})

	assert.Equal(t, once.NumNodes(), twice.NumNodes())
	assert.Equal(t, once.NumEdges(), twice.NumEdges())
	assert.Equal(t, 3, twice.NumSequences())

	node, ok := twice.Lookup(dafsa.Tokenize("taps"))
	require.True(t, ok)
	assert.Equal(t, 2, node.Weight())

	// weight counts every sequence whose path passes through, so the
	// "tap" node also counts both "taps" insertions
	node, ok = twice.Lookup(dafsa.Tokenize("tap"))
	require.True(t, ok)
	assert.Equal(t, 3, node.Weight())

	assert.Equal(t, 3, twice.Root().Weight(), "root counts every sequence")
}

func TestWeightsDisabled(t *testing.T) {
	d := buildWords(t, []string{"tap", "tap"}, dafsa.CollectWeights(false))

	node, ok := d.Lookup(dafsa.Tokenize("tap"))
	require.True(t, ok)
	assert.Equal(t, 0, node.Weight())
}

func TestAddOutOfOrder(t *testing.T) {
	d := dafsa.New()
	require.NoError(t, d.AddWord("base"))
	err := d.AddWord("apple")
	assert.ErrorIs(t, err, dafsa.ErrOutOfOrder)

	// equal and later sequences are still fine
	require.NoError(t, d.AddWord("base"))
	require.NoError(t, d.AddWord("basic"))
}

func TestAddAfterFinish(t *testing.T) {
	d := dafsa.New()
	require.NoError(t, d.AddWord("one"))
	d.Finish()
	d.Finish() // idempotent

	assert.ErrorIs(t, d.AddWord("two"), dafsa.ErrFinished)
}

func TestFromSequencesSortsInput(t *testing.T) {
	d, err := dafsa.FromSequences([][]string{
		{"to", "day"},
		{"a", "way"},
		{"a", "head"},
	})
	require.NoError(t, err)

	assert.True(t, d.Contains([]string{"a", "head"}))
	assert.True(t, d.Contains([]string{"to", "day"}))
	assert.False(t, d.Contains([]string{"a"}))
}

func TestEmptySequence(t *testing.T) {
	d, err := dafsa.FromSequences([][]string{{}, {"a"}})
	require.NoError(t, err)

	assert.True(t, d.Contains(nil))
	assert.True(t, d.Contains([]string{"a"}))

	seqs := d.Sequences()
	require.Len(t, seqs, 2)
	assert.Empty(t, seqs[0])
}

func TestSequencesLexicographic(t *testing.T) {
	d := buildWords(t, []string{"top", "tap", "taps", "dib"})

	var got []string
	for _, seq := range d.Sequences() {
		var w string
		for _, e := range seq {
			w += e
		}
		got = append(got, w)
	}
	assert.Equal(t, []string{"dib", "tap", "taps", "top"}, got)
}

func TestAlphabet(t *testing.T) {
	d := buildWords(t, []string{"tap", "top"})
	assert.Equal(t, []string{"a", "o", "p", "t"}, d.Alphabet())
}

func TestMultiCharacterElements(t *testing.T) {
	d, err := dafsa.FromSequences([][]string{
		{"k", "a", "t", "a"},
		{"k", "a", "ta"},
	})
	require.NoError(t, err)

	assert.True(t, d.Contains([]string{"k", "a", "ta"}))
	assert.False(t, d.Contains([]string{"k", "a", "t"}))
	assert.Equal(t, []string{"a", "k", "t", "ta"}, d.Alphabet())
}

func TestUseBeforeFinishPanics(t *testing.T) {
	d := dafsa.New()
	require.NoError(t, d.AddWord("tap"))
	assert.Panics(t, func() { d.Contains(dafsa.Tokenize("tap")) })
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"t", "a", "p"}, dafsa.Tokenize("tap"))
	assert.Equal(t, []string{"ü", "è"}, dafsa.Tokenize("üè"), "runes, not bytes")
	assert.Empty(t, dafsa.Tokenize(""))
}
