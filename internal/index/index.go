// Package index defines distinct integer newtypes for the three arrays
// backing a compiled trie (nodes, characters, range elements) so that an
// index into one array can never be silently used against another: an
// index is only meaningful for the array it was produced for. Go has no
// sub-package-private visibility, so the discipline this package enforces
// is module-wide rather than container-only: only code inside this module
// (trie, build, search) can construct these values, via the constructors
// below — no external caller can manufacture one from an arbitrary integer.
package index

// Node indexes a position in the compiled trie's node array. Index 0 is
// always the first root sibling.
type Node uint32

// NewNode constructs a Node index. Callers outside this module cannot reach
// this function (internal/ import restriction), which is the module-wide
// analogue of "constructable only inside the container's own code paths."
func NewNode(v uint32) Node { return Node(v) }

func (n Node) Int() int { return int(n) }

// IsRoot reports whether n addresses the first root sibling.
func (n Node) IsRoot() bool { return n == 0 }

// Char indexes a position in the compiled trie's character array.
type Char uint32

func NewChar(v uint32) Char { return Char(v) }

func (c Char) Int() int { return int(c) }

// Range indexes a position in the compiled trie's range-element array.
type Range uint32

func NewRange(v uint32) Range { return Range(v) }

func (r Range) Int() int { return int(r) }
