package build

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mxvdb/vaguedict/intrie"
	"github.com/mxvdb/vaguedict/search"
)

func compileWords(t *testing.T, words map[string]uint32) *intrie.Trie {
	t.Helper()
	tr := intrie.New()
	for w, f := range words {
		require.NoError(t, tr.Insert(w, f))
	}
	return tr
}

func TestCompileRoundTripsEveryInsertedWord(t *testing.T) {
	words := map[string]uint32{
		"cata": 1, "cat": 2, "catapult": 3,
		"dog": 4, "dot": 5, "dove": 6,
		"a": 7, "b": 8, "c": 9, "e": 10,
	}
	tr := compileWords(t, words)
	ct := Compile(tr)

	for w, freq := range words {
		got, ok := search.Exact(ct, w)
		require.True(t, ok, "word %q should be found", w)
		require.Equal(t, freq, got)
	}

	_, ok := search.Exact(ct, "nonexistent")
	require.False(t, ok)
}

func TestInternSubstringDeduplicatesRepeatedSubstrings(t *testing.T) {
	tr := intrie.New()
	require.NoError(t, tr.Insert("hello-world-one", 1))
	require.NoError(t, tr.Insert("hello-world-two", 2))

	c := &compiler{dedupIndex: make(map[uint64][]int)}
	a := c.internSubstring("shared-prefix")
	b := c.internSubstring("shared-prefix")
	require.Equal(t, a, b)
	require.Equal(t, len("shared-prefix"), len(c.chars))
}

func TestCompileEmptyTrieProducesEmptyContainer(t *testing.T) {
	tr := intrie.New()
	ct := Compile(tr)
	require.Empty(t, ct.Nodes)
	require.Empty(t, ct.Chars)
	require.Empty(t, ct.Ranges)
}
