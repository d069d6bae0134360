package trie

import (
	"unicode/utf8"

	"golang.org/x/exp/slices"

	"github.com/mxvdb/vaguedict/internal/errutil"
	"github.com/mxvdb/vaguedict/internal/index"
)

// CompiledTrie is the immutable, array-backed trie produced by build.Compile
// or mapped from a dictionary file (dictfile.Open). It is read-only and safe
// to share across goroutines once constructed.
//
// Chars holds every substring referenced by a substring node, concatenated,
// indexed by byte offset. A substring node's length field is therefore a
// byte length, not a rune count.
type CompiledTrie struct {
	Nodes  []Node
	Chars  string
	Ranges []RangeElement
}

// RootSiblings returns the root layer, empty iff the trie holds no words.
func (t *CompiledTrie) RootSiblings() []Node {
	if len(t.Nodes) == 0 {
		return nil
	}
	return t.Siblings(index.NewNode(0))
}

// Siblings returns the full sibling slice starting at first, which must be
// the first index of its layer.
func (t *CompiledTrie) Siblings(first index.Node) []Node {
	i := first.Int()
	errutil.BugOn(i < 0 || i >= len(t.Nodes), "sibling index %d out of range [0,%d)", i, len(t.Nodes))
	n := t.Nodes[i].RightSiblingCount() + 1
	errutil.BugOn(i+n > len(t.Nodes), "sibling layer [%d,%d) out of range [0,%d)", i, i+n, len(t.Nodes))
	return t.Nodes[i : i+n]
}

// Substring borrows the characters backing a substring node's [start, end)
// byte bounds.
func (t *CompiledTrie) Substring(start, end index.Char) string {
	s, e := start.Int(), end.Int()
	errutil.BugOn(s < 0 || e > len(t.Chars) || s > e, "substring bounds [%d,%d) out of range [0,%d)", s, e, len(t.Chars))
	return t.Chars[s:e]
}

// Range borrows a range node's elements over its [start, end) bounds.
func (t *CompiledTrie) Range(start, end index.Range) []RangeElement {
	s, e := start.Int(), end.Int()
	errutil.BugOn(s < 0 || e > len(t.Ranges) || s > e, "range bounds [%d,%d) out of range [0,%d)", s, e, len(t.Ranges))
	return t.Ranges[s:e]
}

// RangeElementAt returns one range element at start+offset without the
// bounds checks Range performs on its slice; offset must already be known
// valid by the caller.
func (t *CompiledTrie) RangeElementAt(start index.Range, offset int) RangeElement {
	return t.Ranges[start.Int()+offset]
}

// firstChar returns the character a node's binary-search key compares
// against: a naive node's character, a substring node's first rune, or a
// range node's first character (the low end of its interval).
func (t *CompiledTrie) firstChar(n Node) rune {
	switch n.Tag() {
	case TagNaive:
		return n.NaiveChar()
	case TagSubstring:
		start, end := n.SubstringBounds()
		r, _ := utf8.DecodeRuneInString(t.Substring(start, end))
		return r
	case TagRange:
		return n.RangeFirstChar()
	default:
		errutil.Bug("unknown node tag %d", n.Tag())
		return 0
	}
}

// compareChar orders a node's key character against a query rune: Equal if
// the query falls inside the node's key (a single character for naive/
// substring, or matches a range's interval), Less/Greater otherwise. This is
// the comparator exact and approximate search both binary-search siblings
// with.
func (t *CompiledTrie) compareChar(n Node, query rune) int {
	if n.Tag() == TagRange {
		first := n.RangeFirstChar()
		start, end := n.RangeBounds()
		last := first + rune(end.Int()-start.Int()) - 1
		switch {
		case query < first:
			return 1 // node's key is above query
		case query > last:
			return -1
		default:
			return 0
		}
	}
	return compareRune(t.firstChar(n), query)
}

func compareRune(a, b rune) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// FindChild binary-searches siblings for the child whose key covers query,
// returning the node and true on a hit.
func (t *CompiledTrie) FindChild(siblings []Node, query rune) (Node, bool) {
	i, ok := slices.BinarySearchFunc(siblings, query, func(n Node, q rune) int {
		return t.compareChar(n, q)
	})
	if !ok {
		return Node{}, false
	}
	return siblings[i], true
}
