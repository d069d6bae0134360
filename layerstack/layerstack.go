// Package layerstack implements the reusable LIFO of variable-width rows
// backing the Damerau-Levenshtein score matrix during approximate search.
// It simultaneously maintains the concatenation of each layer's trie
// character as the "current path word," and hands out the three-way
// disjoint borrow the row update needs without copying.
package layerstack

import "github.com/mxvdb/vaguedict/internal/errutil"

// Stack is a LIFO of variable-length int32 layers over one backing buffer.
// The zero value is an empty stack ready for use; New returns one.
type Stack struct {
	buf     []int32
	offsets []int
	hasChar []bool
	chars   []rune
	word    []rune
}

// New returns an empty layer stack ready for reuse across queries.
func New() *Stack {
	return &Stack{}
}

// Reset clears the stack for reuse without freeing its backing arrays.
func (s *Stack) Reset() {
	s.buf = s.buf[:0]
	s.offsets = s.offsets[:0]
	s.hasChar = s.hasChar[:0]
	s.chars = s.chars[:0]
	s.word = s.word[:0]
}

// PushLayer appends size default-valued elements as a new top layer, caused
// by moving onto trie character char. The caller fills the row's values via
// FetchLayer / FetchLast3Layers afterwards.
func (s *Stack) PushLayer(char rune, size int) {
	s.pushLayer(char, true, size)
}

// PushRootLayer pushes the stack's first layer, which carries no trie
// character (it represents the empty trie path).
func (s *Stack) PushRootLayer(size int) {
	errutil.BugOn(len(s.offsets) != 0, "PushRootLayer called on a non-empty stack")
	s.pushLayer(0, false, size)
}

func (s *Stack) pushLayer(char rune, hasChar bool, size int) {
	errutil.BugOn(size < 0, "negative layer size %d", size)
	s.offsets = append(s.offsets, len(s.buf))
	for i := 0; i < size; i++ {
		s.buf = append(s.buf, 0)
	}
	s.hasChar = append(s.hasChar, hasChar)
	s.chars = append(s.chars, char)
	if hasChar {
		s.word = append(s.word, char)
	}
}

// PopLayer removes the top layer.
func (s *Stack) PopLayer() {
	n := len(s.offsets)
	errutil.BugOn(n == 0, "PopLayer on an empty stack")
	start := s.offsets[n-1]
	if s.hasChar[n-1] {
		s.word = s.word[:len(s.word)-1]
	}
	s.buf = s.buf[:start]
	s.offsets = s.offsets[:n-1]
	s.hasChar = s.hasChar[:n-1]
	s.chars = s.chars[:n-1]
}

// Len reports the number of layers currently on the stack.
func (s *Stack) Len() int { return len(s.offsets) }

// Word returns the trie path spelled by every pushed character so far, in
// push order (root-to-current).
func (s *Stack) Word() string { return string(s.word) }

// FetchLayer returns the top layer.
func (s *Stack) FetchLayer() []int32 {
	n := len(s.offsets)
	errutil.BugOn(n == 0, "FetchLayer on an empty stack")
	return s.buf[s.offsets[n-1]:]
}

// FetchLast3Layers returns the current layer, the one below it, and the one
// below that, as three disjoint mutable slices. Layers that don't exist yet
// (near the bottom of the stack) come back empty. This is what lets the
// Damerau-Levenshtein row update read the previous row and the one before it
// while writing the new row, without any slice aliasing another.
func (s *Stack) FetchLast3Layers() (cur, prev, pprev []int32) {
	n := len(s.offsets)
	end := len(s.buf)
	if n >= 1 {
		cur = s.buf[s.offsets[n-1]:end]
		end = s.offsets[n-1]
	}
	if n >= 2 {
		prev = s.buf[s.offsets[n-2]:end]
		end = s.offsets[n-2]
	}
	if n >= 3 {
		pprev = s.buf[s.offsets[n-3]:end]
	}
	return cur, prev, pprev
}
