package dafsa_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milden6/dafsa"
)

func TestSearchWithinDistance(t *testing.T) {
	lexicon := []string{"arbil", "athie", "auric", "bottom", "carrel", "trial"}

	bothForms(t, lexicon, func(t *testing.T, s searcher) {
		matches, err := s.SearchWithinDistance(dafsa.Tokenize("arie"), 2)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"arbil", "athie", "auric"}, matchedWords(matches))

		matches, err = s.SearchWithinDistance(dafsa.Tokenize("arie"), 1)
		require.NoError(t, err)
		assert.Empty(t, matches)

		matches, err = s.SearchWithinDistance(dafsa.Tokenize("arie"), 3)
		require.NoError(t, err)
		assert.Contains(t, matchedWords(matches), "trial")
	})
}

func TestSearchWithinDistanceZero(t *testing.T) {
	bothForms(t, []string{"tap", "taps", "top"}, func(t *testing.T, s searcher) {
		matches, err := s.SearchWithinDistance(dafsa.Tokenize("tap"), 0)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"tap"}, matchedWords(matches))

		matches, err = s.SearchWithinDistance(dafsa.Tokenize("tip"), 0)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestSearchWithinDistanceCoversEdits(t *testing.T) {
	bothForms(t, []string{"tap", "taps", "top", "stop"}, func(t *testing.T, s searcher) {
		matches, err := s.SearchWithinDistance(dafsa.Tokenize("top"), 1)
		require.NoError(t, err)
		// substitution, insertion and deletion each cost one
		assert.ElementsMatch(t, []string{"tap", "top", "stop"}, matchedWords(matches))
	})
}

func TestSearchWithinDistanceErrors(t *testing.T) {
	bothForms(t, []string{"tap"}, func(t *testing.T, s searcher) {
		_, err := s.SearchWithinDistance(nil, 1)
		assert.ErrorIs(t, err, dafsa.ErrEmptyPattern)

		_, err = s.SearchWithinDistance(dafsa.Tokenize("tap"), -1)
		assert.ErrorIs(t, err, dafsa.ErrInvalidDistance)
	})
}

func TestSearchWithinDistanceCounts(t *testing.T) {
	bothForms(t, []string{"tap", "tap", "taps"}, func(t *testing.T, s searcher) {
		matches, err := s.SearchWithinDistance(dafsa.Tokenize("tap"), 1)
		require.NoError(t, err)

		counts := make(map[string]int)
		for _, m := range matches {
			counts[strings.Join(m.Sequence, "")] = m.Count
		}
		// "tap" counts its two insertions plus the "taps" traversal
		assert.Equal(t, map[string]int{"tap": 3, "taps": 1}, counts)
	})
}
