package trie

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mxvdb/vaguedict/internal/index"
)

func TestSiblingsRecoversFullLayer(t *testing.T) {
	ct := &CompiledTrie{
		Nodes: []Node{
			NewNaiveNode('a', index.NewNode(0), 1, 2),
			NewNaiveNode('m', index.NewNode(0), 2, 1),
			NewNaiveNode('z', index.NewNode(0), 3, 0),
		},
	}

	root := ct.RootSiblings()
	require.Len(t, root, 3)

	again := ct.Siblings(index.NewNode(0))
	require.Equal(t, root, again)
}

func TestSubstringBorrowsCharacterRange(t *testing.T) {
	ct := &CompiledTrie{Chars: "hello world"}
	require.Equal(t, "hello", ct.Substring(index.NewChar(0), index.NewChar(5)))
	require.Equal(t, "world", ct.Substring(index.NewChar(6), index.NewChar(11)))
}

func TestFindChildDispatchesAcrossVariants(t *testing.T) {
	ct := &CompiledTrie{
		Nodes: []Node{
			NewRangeNode('a', index.NewRange(0), index.NewRange(3), 1),
			NewNaiveNode('z', index.NewNode(0), 0, 0),
		},
		Ranges: []RangeElement{
			{FirstChild: 0, Frequency: 1}, // 'a'
			{},                            // 'b' absent
			{FirstChild: 0, Frequency: 2}, // 'c'
		},
	}

	siblings := ct.RootSiblings()
	require.Len(t, siblings, 2)

	n, ok := ct.FindChild(siblings, 'a')
	require.True(t, ok)
	require.Equal(t, TagRange, n.Tag())

	n, ok = ct.FindChild(siblings, 'c')
	require.True(t, ok)
	require.Equal(t, TagRange, n.Tag())

	n, ok = ct.FindChild(siblings, 'z')
	require.True(t, ok)
	require.Equal(t, TagNaive, n.Tag())

	_, ok = ct.FindChild(siblings, 'd')
	require.False(t, ok)
}

func TestRangeElementAt(t *testing.T) {
	ct := &CompiledTrie{
		Ranges: []RangeElement{{}, {FirstChild: 4}, {Frequency: 9}},
	}
	require.True(t, ct.RangeElementAt(index.NewRange(0), 0).Absent())
	require.True(t, ct.RangeElementAt(index.NewRange(0), 1).HasChild())
	require.True(t, ct.RangeElementAt(index.NewRange(0), 2).HasFrequency())
}
