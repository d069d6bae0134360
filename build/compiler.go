// Package build implements the construction pipeline: the per-layer
// emission heuristic in plan.go, and the node/character/range emitter in
// this file, which streams an intermediate trie into a trie.CompiledTrie.
package build

import (
	"github.com/hillbig/rsdic"
	"github.com/zeebo/xxh3"

	"github.com/mxvdb/vaguedict/internal/errutil"
	"github.com/mxvdb/vaguedict/internal/index"
	"github.com/mxvdb/vaguedict/intrie"
	"github.com/mxvdb/vaguedict/trie"
)

// dedupWindow bounds the character-array dedup search to the last W bytes.
const dedupWindow = 2048

// Compile drains t and emits a compiled trie. t must not be used afterwards.
// An empty t (no inserted words) produces an empty CompiledTrie.
func Compile(t *intrie.Trie) *trie.CompiledTrie {
	c := &compiler{dedupIndex: make(map[uint64][]int)}
	if roots := t.Drain(); len(roots) > 0 {
		c.emitLayer(roots)
	}
	return &trie.CompiledTrie{
		Nodes:  c.nodes,
		Chars:  string(c.chars),
		Ranges: c.ranges,
	}
}

type compiler struct {
	nodes  []trie.Node
	chars  []byte
	ranges []trie.RangeElement

	// dedupIndex maps an xxh3 hash of a substring to the start offsets in
	// chars where a substring hashing to it was appended, most recent last.
	// A lookup is an O(1) amortized hash probe plus a short verification pass
	// over same-hash candidates still inside the window. Only substrings that
	// were themselves appended whole are found this way; an occurrence inside
	// a longer appended substring, or spanning two of them, is not.
	dedupIndex map[uint64][]int
}

// rangePatch carries what Phase 3 needs to back-patch a range node's
// elements, one present slot at a time.
type rangePatch struct {
	bv         *rsdic.RSDic // presence bitmap over the range's span, built in Phase 2
	rank       int          // how many present slots Phase 3 has visited so far
	rangeStart index.Range
	firstChar  rune
}

// pending carries one plan group's just-emitted node through Phase 3, where
// its children are recursed into and its placeholder is back-patched.
type pending struct {
	nodeIdx int
	items   []*intrie.Node
	rng     *rangePatch // non-nil only for range groups
}

// emitLayer runs Phases 2 and 3 over one layer of entries (already ordered
// by first character) and returns the index of the layer's first node.
// Callers must not call emitLayer with an empty slice; check len(entries)
// first and treat "no children" as the zero value of index.Node.
func (c *compiler) emitLayer(entries []*intrie.Node) index.Node {
	errutil.BugOn(len(entries) == 0, "emitLayer called with no entries")
	plan := buildPlan(entries)
	first := index.NewNode(uint32(len(c.nodes)))

	pendings := make([]pending, len(plan))

	// Phase 2: emit every node in this layer with placeholder children.
	for p, g := range plan {
		siblingCount := len(plan) - 1 - p
		switch g.kind {
		case trie.TagNaive:
			e := g.items[0]
			freq, _ := e.Frequency()
			idx := c.append(trie.NewNaiveNode(firstRune(e.Substring()), index.NewNode(0), freq, siblingCount))
			pendings[p] = pending{nodeIdx: idx, items: g.items}

		case trie.TagSubstring:
			e := g.items[0]
			start := c.internSubstring(e.Substring())
			freq, _ := e.Frequency()
			idx := c.append(trie.NewSubstringNode(start, len(e.Substring()), index.NewNode(0), freq, siblingCount))
			pendings[p] = pending{nodeIdx: idx, items: g.items}

		case trie.TagRange:
			rng := c.emitRangeSlab(g.items)
			node := trie.NewRangeNode(rng.firstChar, rng.rangeStart, index.NewRange(uint32(len(c.ranges))), siblingCount)
			idx := c.append(node)
			pendings[p] = pending{nodeIdx: idx, items: g.items, rng: rng}
		}
	}

	// Phase 3: recurse into each entry's children in plan order, back-patching
	// as each recursion completes.
	for _, pd := range pendings {
		if pd.rng != nil {
			for _, item := range pd.items {
				c.recurseAndPatchRange(item, pd.rng)
			}
		} else {
			c.recurseAndPatchDirect(pd.items[0], pd.nodeIdx)
		}
	}

	return first
}

func (c *compiler) append(n trie.Node) int {
	idx := len(c.nodes)
	c.nodes = append(c.nodes, n)
	return idx
}

// emitRangeSlab reserves and fills a dense-range node's element slab,
// recording which slots are present in a transient rank/select bitmap so
// Phase 3 can walk "the next present but not yet back-patched slot" with
// rsdic.Select instead of a linear rescan.
func (c *compiler) emitRangeSlab(items []*intrie.Node) *rangePatch {
	first := firstRune(items[0].Substring())
	last := firstRune(items[len(items)-1].Substring())
	span := int(last-first) + 1

	present := make(map[rune]*intrie.Node, len(items))
	for _, it := range items {
		present[firstRune(it.Substring())] = it
	}

	start := index.NewRange(uint32(len(c.ranges)))
	bv := rsdic.New()
	for k := 0; k < span; k++ {
		ch := first + rune(k)
		if it, ok := present[ch]; ok {
			freq, _ := it.Frequency()
			c.ranges = append(c.ranges, trie.RangeElement{Frequency: freq})
			bv.PushBack(true)
		} else {
			c.ranges = append(c.ranges, trie.RangeElement{})
			bv.PushBack(false)
		}
	}

	return &rangePatch{bv: bv, rangeStart: start, firstChar: first}
}

func (c *compiler) recurseAndPatchDirect(item *intrie.Node, nodeIdx int) {
	children := item.Drain()
	if len(children) == 0 {
		return
	}
	childIdx := c.emitLayer(children)
	c.nodes[nodeIdx] = c.nodes[nodeIdx].WithFirstChild(childIdx)
}

func (c *compiler) recurseAndPatchRange(item *intrie.Node, rng *rangePatch) {
	offset := int(rng.bv.Select(uint64(rng.rank), true))
	rng.rank++

	children := item.Drain()
	if len(children) == 0 {
		return
	}
	childIdx := c.emitLayer(children)
	slot := rng.rangeStart.Int() + offset
	c.ranges[slot].FirstChild = uint32(childIdx)
}

// internSubstring appends s to the character array, reusing the offset of an
// earlier identical substring if that substring was appended whole and starts
// within the last dedupWindow bytes. An occurrence of s inside or across other
// appended substrings is not reused.
func (c *compiler) internSubstring(s string) index.Char {
	h := xxh3.HashString(s)
	windowStart := len(c.chars) - dedupWindow
	if windowStart < 0 {
		windowStart = 0
	}

	if starts := c.dedupIndex[h]; len(starts) > 0 {
		for i := len(starts) - 1; i >= 0; i-- {
			start := starts[i]
			if start < windowStart {
				break
			}
			end := start + len(s)
			if end <= len(c.chars) && string(c.chars[start:end]) == s {
				return index.NewChar(uint32(start))
			}
		}
	}

	start := len(c.chars)
	c.chars = append(c.chars, s...)
	c.dedupIndex[h] = append(c.dedupIndex[h], start)
	return index.NewChar(uint32(start))
}
