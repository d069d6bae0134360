// Package intrie implements the mutable, build-time-only patricia trie:
// insert word/frequency pairs in any order, then drain it once into a
// sorted tree of entries for build.Compile to consume.
//
// Children of a node are kept in an iradix.Tree keyed by the child's leading
// byte, the same ordered-byte-map role hashicorp/go-immutable-radix plays
// against bit-string keys in the zfasttrie benchmarks this package's
// construction pipeline is adapted from — here it gives Children() its
// "ordered by first character" iteration for free, with no separate sort
// step.
package intrie

import (
	"fmt"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// Node is one patricia-trie node: the substring labelling the edge from its
// parent, its children (ordered by first character), and an optional
// frequency that is set iff the path to this node spells a dictionary word.
type Node struct {
	substring string
	children  *iradix.Tree
	frequency uint32
}

func newNode(substring string, frequency uint32) *Node {
	return &Node{substring: substring, children: iradix.New(), frequency: frequency}
}

// Substring returns the edge label leading to this node.
func (n *Node) Substring() string { return n.substring }

// Frequency returns the node's frequency and whether it is set.
func (n *Node) Frequency() (uint32, bool) { return n.frequency, n.frequency != 0 }

// Children returns this node's children ordered by first character,
// without draining them.
func (n *Node) Children() []*Node {
	if n.children.Len() == 0 {
		return nil
	}
	out := make([]*Node, 0, n.children.Len())
	it := n.children.Root().Iterator()
	for {
		_, raw, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, raw.(*Node))
	}
	return out
}

// Drain returns this node's children ordered by first character and detaches
// them from the node: the build-time trie is moved out piece by piece as
// compilation walks it. Calling Drain twice returns an empty slice the
// second time.
func (n *Node) Drain() []*Node {
	out := n.Children()
	n.children = iradix.New()
	return out
}

// Trie is the mutable patricia trie built from `word freq` input lines.
type Trie struct {
	root *Node
}

// New returns an empty intermediate trie.
func New() *Trie {
	return &Trie{root: newNode("", 0)}
}

// Insert adds word with the given frequency, splitting existing edges as
// needed. Re-inserting the same word overwrites its frequency. freq must be
// strictly positive.
func (t *Trie) Insert(word string, freq uint32) error {
	if freq == 0 {
		return fmt.Errorf("intrie: frequency must be positive, got 0 for %q", word)
	}
	if word == "" {
		return fmt.Errorf("intrie: cannot insert the empty word")
	}
	insert(t.root, word, freq)
	return nil
}

// Drain detaches and returns the trie's root-level entries, ordered by first
// character. The trie must not be used again afterwards.
func (t *Trie) Drain() []*Node {
	return t.root.Drain()
}

func insert(node *Node, remaining string, freq uint32) {
	key := childKey(remaining)
	raw, ok := node.children.Get(key)
	if !ok {
		node.children, _, _ = node.children.Insert(key, newNode(remaining, freq))
		return
	}

	child := raw.(*Node)
	lcp := commonPrefixLen(child.substring, remaining)

	switch {
	case lcp == len(child.substring) && lcp == len(remaining):
		// Exact match: overwrite the frequency in place.
		child.frequency = freq

	case lcp == len(child.substring):
		// remaining fully covers child's edge; recurse past it.
		insert(child, remaining[lcp:], freq)

	default:
		// Partial overlap: split child's edge at lcp.
		mid := newNode(child.substring[:lcp], 0)
		child.substring = child.substring[lcp:]
		mid.children, _, _ = mid.children.Insert(childKey(child.substring), child)

		if lcp == len(remaining) {
			mid.frequency = freq
		} else {
			leaf := newNode(remaining[lcp:], freq)
			mid.children, _, _ = mid.children.Insert(childKey(leaf.substring), leaf)
		}

		node.children, _, _ = node.children.Insert(key, mid)
	}
}

func childKey(s string) []byte { return []byte{s[0]} }

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
