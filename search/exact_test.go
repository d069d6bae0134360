package search_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mxvdb/vaguedict/internal/index"
	"github.com/mxvdb/vaguedict/search"
	"github.com/mxvdb/vaguedict/trie"
)

// catadadfadeTrie hand-builds the compiled trie used throughout the search
// tests: a root with three siblings -- substring "cata" (a word, freq 1)
// whose own children are naive 'd' (freq 2) and naive 'f' (freq 1); naive
// 'd' (not itself a word) with naive children 'a' (freq 9), 'r' (freq 6),
// 't' (freq 1), 'w' (freq 7); naive 'f' (freq 5) with substring child "ade"
// (freq 10).
func catadadfadeTrie() *trie.CompiledTrie {
	nodes := make([]trie.Node, 10)

	// Root layer: cata(0), d(1), f(2).
	nodes[0] = trie.NewSubstringNode(index.NewChar(0), 4, index.NewNode(3), 1, 2)
	nodes[1] = trie.NewNaiveNode('d', index.NewNode(5), 0, 1)
	nodes[2] = trie.NewNaiveNode('f', index.NewNode(9), 5, 0)

	// cata's children: d(3), f(4).
	nodes[3] = trie.NewNaiveNode('d', index.NewNode(0), 2, 1)
	nodes[4] = trie.NewNaiveNode('f', index.NewNode(0), 1, 0)

	// root-d's children: a(5), r(6), t(7), w(8).
	nodes[5] = trie.NewNaiveNode('a', index.NewNode(0), 9, 3)
	nodes[6] = trie.NewNaiveNode('r', index.NewNode(0), 6, 2)
	nodes[7] = trie.NewNaiveNode('t', index.NewNode(0), 1, 1)
	nodes[8] = trie.NewNaiveNode('w', index.NewNode(0), 7, 0)

	// root-f's child: substring "ade"(9).
	nodes[9] = trie.NewSubstringNode(index.NewChar(4), 3, index.NewNode(0), 10, 0)

	return &trie.CompiledTrie{Nodes: nodes, Chars: "cataade"}
}

func TestExactFindsWordAtSubstringNode(t *testing.T) {
	freq, ok := search.Exact(catadadfadeTrie(), "cata")
	require.True(t, ok)
	require.Equal(t, uint32(1), freq)
}

func TestExactDescendsThroughNaiveNodeToFindWord(t *testing.T) {
	freq, ok := search.Exact(catadadfadeTrie(), "da")
	require.True(t, ok)
	require.Equal(t, uint32(9), freq)
}

func TestExactConsumesNaiveThenMatchesSubstring(t *testing.T) {
	freq, ok := search.Exact(catadadfadeTrie(), "fade")
	require.True(t, ok)
	require.Equal(t, uint32(10), freq)
}

func TestExactPrefixOfSubstringIsAbsent(t *testing.T) {
	_, ok := search.Exact(catadadfadeTrie(), "cat")
	require.False(t, ok)
}

func TestExactMissingSiblingIsAbsent(t *testing.T) {
	_, ok := search.Exact(catadadfadeTrie(), "dx")
	require.False(t, ok)
}

func TestExactUnreachableFirstCharacterIsAbsent(t *testing.T) {
	_, ok := search.Exact(catadadfadeTrie(), "zzz")
	require.False(t, ok)
}

func TestExactEmptyWordIsAbsent(t *testing.T) {
	_, ok := search.Exact(catadadfadeTrie(), "")
	require.False(t, ok)
}

func TestExactIntermediateNodeWithoutFrequencyIsAbsent(t *testing.T) {
	// "d" alone: root's naive 'd' node has no frequency, only children.
	_, ok := search.Exact(catadadfadeTrie(), "d")
	require.False(t, ok)
}

func TestExactFromStartsAtArbitrarySiblingLayer(t *testing.T) {
	ct := catadadfadeTrie()
	dNode, ok := ct.FindChild(ct.RootSiblings(), 'd')
	require.True(t, ok)
	child, hasChild := dNode.FirstChild()
	require.True(t, hasChild)

	freq, ok := search.ExactFrom(ct, ct.Siblings(child), "t")
	require.True(t, ok)
	require.Equal(t, uint32(1), freq)
}
