package search

import (
	"math"

	"github.com/mxvdb/vaguedict/internal/index"
	"github.com/mxvdb/vaguedict/layerstack"
	"github.com/mxvdb/vaguedict/trie"
)

// Result is one match from an approximate search: a dictionary word, its
// stored frequency, and its Damerau-Levenshtein distance from the query.
// Results come back in DFS order; sort by (Distance asc, Frequency desc,
// Word asc) to get the caller-facing ranking.
type Result struct {
	Word      string
	Frequency uint32
	Distance  int
}

// record is one entry of the iteration stack: either a layer-end sentinel,
// or a visit of one trie-layer position (a naive node, a substring node, or
// one element of a range node).
type record struct {
	sentinel bool

	node        trie.Node
	rangeOffset int
	prevChar    rune
	hasPrev     bool
}

func childRecord(n trie.Node, prevChar rune) record {
	if n.Tag() == trie.TagRange {
		return record{node: n, rangeOffset: 0, prevChar: prevChar, hasPrev: true}
	}
	return record{node: n, prevChar: prevChar, hasPrev: true}
}

// Approximate finds every dictionary word within threshold Damerau-
// Levenshtein edits of query, walking the trie once while incrementally
// maintaining a row of the edit-distance matrix per candidate path, pruning
// subtrees whose minimum achievable distance exceeds threshold, and falling
// back to exact search once a subtree's minimum equals the threshold exactly
// (any further edit would only push the distance past it).
func Approximate(t *trie.CompiledTrie, query string, threshold int) []Result {
	queryRunes := []rune(query)
	if len(queryRunes) == 0 {
		return nil
	}
	s := &approxSearch{
		t:         t,
		query:     queryRunes,
		threshold: threshold,
		rows:      layerstack.New(),
	}
	return s.run()
}

type approxSearch struct {
	t         *trie.CompiledTrie
	query     []rune
	threshold int
	rows      *layerstack.Stack
	iter      []record
	results   []Result
}

func (s *approxSearch) run() []Result {
	n := len(s.query)
	s.rows.PushRootLayer(n + 1)
	row := s.rows.FetchLayer()
	for i := range row {
		row[i] = int32(i)
	}

	siblings := s.t.RootSiblings()
	s.push(record{sentinel: true})
	for i := len(siblings) - 1; i >= 0; i-- {
		s.push(childRecord(siblings[i], 0))
	}

	for len(s.iter) > 0 {
		rec := s.pop()
		if rec.sentinel {
			s.rows.PopLayer()
			continue
		}
		switch rec.node.Tag() {
		case trie.TagNaive:
			s.visitNaive(rec)
		case trie.TagSubstring:
			s.visitSubstring(rec)
		case trie.TagRange:
			s.visitRange(rec)
		}
	}

	return s.results
}

func (s *approxSearch) push(r record) { s.iter = append(s.iter, r) }

func (s *approxSearch) pop() record {
	r := s.iter[len(s.iter)-1]
	s.iter = s.iter[:len(s.iter)-1]
	return r
}

func (s *approxSearch) pushRow(c rune, prevChar rune, hasPrev bool) {
	last, parent, _ := s.rows.FetchLast3Layers()
	row := computeRow(last, parent, s.query, prevChar, hasPrev, c)
	s.rows.PushLayer(c, len(row))
	copy(s.rows.FetchLayer(), row)
}

func (s *approxSearch) visitNaive(rec record) {
	c := rec.node.NaiveChar()
	s.pushRow(c, rec.prevChar, rec.hasPrev)
	freq, hasFreq := rec.node.Frequency()
	child, hasChild := rec.node.FirstChild()
	s.finish(freq, hasFreq, child, hasChild, c)
}

func (s *approxSearch) visitSubstring(rec record) {
	start, end := rec.node.SubstringBounds()
	sub := []rune(s.t.Substring(start, end))

	cur, curHas := rec.prevChar, rec.hasPrev
	for k, c := range sub {
		s.pushRow(c, cur, curHas)
		if k < len(sub)-1 {
			s.push(record{sentinel: true})
		}
		cur, curHas = c, true
	}

	freq, hasFreq := rec.node.Frequency()
	child, hasChild := rec.node.FirstChild()
	s.finish(freq, hasFreq, child, hasChild, cur)
}

func (s *approxSearch) visitRange(rec record) {
	start, end := rec.node.RangeBounds()
	span := end.Int() - start.Int()

	if next, ok := nextPresentOffset(s.t, start, rec.rangeOffset+1, span); ok {
		s.push(record{node: rec.node, rangeOffset: next, prevChar: rec.prevChar, hasPrev: rec.hasPrev})
	}

	c := rec.node.RangeFirstChar() + rune(rec.rangeOffset)
	s.pushRow(c, rec.prevChar, rec.hasPrev)

	elem := s.t.RangeElementAt(start, rec.rangeOffset)
	s.finish(elem.Frequency, elem.HasFrequency(), index.NewNode(elem.FirstChild), elem.HasChild(), c)
}

func nextPresentOffset(t *trie.CompiledTrie, start index.Range, from, span int) (int, bool) {
	for o := from; o < span; o++ {
		if !t.RangeElementAt(start, o).Absent() {
			return o, true
		}
	}
	return 0, false
}

// finish applies the word-result check and the descend-or-prune decision
// shared by every visit kind, for the row currently on top of the stack.
func (s *approxSearch) finish(freq uint32, hasFreq bool, child index.Node, hasChild bool, childPrevChar rune) {
	row := s.rows.FetchLayer()
	distance := int(row[len(row)-1])

	if hasFreq && distance <= s.threshold {
		s.results = append(s.results, Result{Word: s.rows.Word(), Frequency: freq, Distance: distance})
	}

	if !hasChild {
		s.rows.PopLayer()
		return
	}

	cmp, equalPositions := classifyRow(row, s.threshold)
	switch cmp {
	case -1:
		siblings := s.t.Siblings(child)
		s.push(record{sentinel: true})
		for i := len(siblings) - 1; i >= 0; i-- {
			s.push(childRecord(siblings[i], childPrevChar))
		}
	case 0:
		siblings := s.t.Siblings(child)
		word := s.rows.Word()
		for _, p := range equalPositions {
			suffix := string(s.query[p:])
			if freq, ok := ExactFrom(s.t, siblings, suffix); ok {
				s.results = append(s.results, Result{Word: word + suffix, Frequency: freq, Distance: s.threshold})
			}
		}
		s.rows.PopLayer()
	default:
		s.rows.PopLayer()
	}
}

// computeRow fills a new Damerau-Levenshtein row from the row one trie
// character up (last), the row two trie characters up (parent, empty if
// unavailable), the query, the previous trie-path character (if any), and
// the trie character this row represents.
func computeRow(last, parent []int32, query []rune, prevChar rune, hasPrev bool, trieChar rune) []int32 {
	n := len(query)
	row := make([]int32, n+1)
	row[0] = last[0] + 1

	for i := 1; i <= n; i++ {
		qi := query[i-1]
		diff := int32(0)
		if qi != trieChar {
			diff = 1
		}

		insert := row[i-1] + 1
		del := last[i] + 1
		replace := last[i-1] + diff

		transpose := int32(math.MaxInt32)
		if len(parent) > 0 && hasPrev && i >= 2 {
			qPrev := query[i-2]
			if qPrev == trieChar && qi == prevChar {
				transpose = parent[i-2] + 1
			}
		}

		row[i] = min4(insert, del, replace, transpose)
	}
	return row
}

func min4(a, b, c, d int32) int32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}

// classifyRow reports how row's minimum compares to threshold: -1 if some
// cell is below it, 0 if the minimum equals it (returning every position at
// that minimum), 1 if every cell exceeds it.
func classifyRow(row []int32, threshold int) (cmp int, equalPositions []int) {
	t := int32(threshold)
	min := row[0]
	for _, v := range row[1:] {
		if v < min {
			min = v
		}
	}
	switch {
	case min < t:
		return -1, nil
	case min == t:
		var eq []int
		for i, v := range row {
			if v == t {
				eq = append(eq, i)
			}
		}
		return 0, eq
	default:
		return 1, nil
	}
}
