// Package search implements exact and approximate lookup over a compiled
// trie.CompiledTrie.
package search

import (
	"github.com/mxvdb/vaguedict/internal/index"
	"github.com/mxvdb/vaguedict/trie"
)

// Exact descends the trie one query character at a time, following the
// naive/substring/range dispatch each layer's matching sibling calls for,
// and reports the word's frequency iff the whole query is spelled out by a
// node carrying one.
func Exact(t *trie.CompiledTrie, word string) (uint32, bool) {
	return ExactFrom(t, t.RootSiblings(), word)
}

// ExactFrom is Exact starting from an arbitrary layer rather than the root;
// approximate search uses it to resolve the exact-bailout case once a
// subtree's minimum distance equals the threshold exactly.
func ExactFrom(t *trie.CompiledTrie, siblings []trie.Node, word string) (uint32, bool) {
	runes := []rune(word)
	if len(runes) == 0 {
		return 0, false
	}

	i := 0
	for i < len(runes) {
		if len(siblings) == 0 {
			return 0, false
		}
		n, ok := t.FindChild(siblings, runes[i])
		if !ok {
			return 0, false
		}

		switch n.Tag() {
		case trie.TagNaive:
			i++
			if i == len(runes) {
				return n.Frequency()
			}
			child, has := n.FirstChild()
			if !has {
				return 0, false
			}
			siblings = t.Siblings(child)

		case trie.TagSubstring:
			start, end := n.SubstringBounds()
			sub := []rune(t.Substring(start, end))
			if i+len(sub) > len(runes) {
				return 0, false
			}
			for k, r := range sub {
				if runes[i+k] != r {
					return 0, false
				}
			}
			i += len(sub)
			if i == len(runes) {
				return n.Frequency()
			}
			child, has := n.FirstChild()
			if !has {
				return 0, false
			}
			siblings = t.Siblings(child)

		case trie.TagRange:
			first := n.RangeFirstChar()
			start, end := n.RangeBounds()
			offset := int(runes[i] - first)
			if offset < 0 || offset >= end.Int()-start.Int() {
				return 0, false
			}
			elem := t.RangeElementAt(start, offset)
			i++
			if i == len(runes) {
				return elem.Frequency, elem.HasFrequency()
			}
			if !elem.HasChild() {
				return 0, false
			}
			siblings = t.Siblings(index.NewNode(elem.FirstChild))
		}
	}
	return 0, false
}
