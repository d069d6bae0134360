// Package dictfile owns the on-disk dictionary format and its mmap-backed
// read path: a fixed 24-byte header (three little-endian uint64 counts)
// followed by the node array, the character blob, and the range-element
// array, back to back with no padding between them.
package dictfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/mxvdb/vaguedict/trie"
)

const headerSize = 24

// Error wraps a dictfile I/O failure with the operation and path it
// happened against.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("dictfile: %s %s: %v", e.Op, e.Path, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

func wrapErr(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Path: path, Err: err}
}

// Dictionary owns a memory-mapped compiled dictionary file. The zero value
// is not usable; construct with Open.
type Dictionary struct {
	mapping mmap.MMap
	file    *os.File
	Trie    *trie.CompiledTrie
}

// Open memory-maps path read-only and types its three regions as a
// trie.CompiledTrie. The node and range-element regions are used in place
// with no copy; the character region is copied into a Go string.
// Callers must call Close when done to release the mapping.
func Open(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr("open", path, err)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, wrapErr("mmap", path, err)
	}

	if len(m) < headerSize {
		m.Unmap()
		f.Close()
		return nil, wrapErr("open", path, fmt.Errorf("truncated header (%d bytes, want at least %d)", len(m), headerSize))
	}

	nodeCount := binary.LittleEndian.Uint64(m[0:8])
	charByteCount := binary.LittleEndian.Uint64(m[8:16])
	rangeCount := binary.LittleEndian.Uint64(m[16:24])

	off := uint64(headerSize)
	nodesEnd := off + nodeCount*trie.NodeByteSize
	charsEnd := nodesEnd + charByteCount
	rangesEnd := charsEnd + rangeCount*trie.RangeElementByteSize

	if uint64(len(m)) < rangesEnd {
		m.Unmap()
		f.Close()
		return nil, wrapErr("open", path, fmt.Errorf("truncated body (have %d bytes, want %d)", len(m), rangesEnd))
	}
	if uint64(len(m)) > rangesEnd {
		m.Unmap()
		f.Close()
		return nil, wrapErr("open", path, fmt.Errorf("trailing garbage after range array (%d extra bytes)", uint64(len(m))-rangesEnd))
	}

	ct := &trie.CompiledTrie{
		Nodes:  trie.NodesFromBytes(m[off:nodesEnd]),
		Chars:  string(m[nodesEnd:charsEnd]),
		Ranges: trie.RangeElementsFromBytes(m[charsEnd:rangesEnd]),
	}

	return &Dictionary{mapping: m, file: f, Trie: ct}, nil
}

// Close releases the memory mapping and the underlying file handle. Safe to
// call once on every exit path after a successful Open; d.Trie must not be
// used again afterwards.
func (d *Dictionary) Close() error {
	unmapErr := d.mapping.Unmap()
	closeErr := d.file.Close()
	switch {
	case unmapErr != nil:
		return wrapErr("unmap", d.file.Name(), unmapErr)
	case closeErr != nil:
		return wrapErr("close", d.file.Name(), closeErr)
	default:
		return nil
	}
}

// Write serialises t to path as header, node array, character blob, range
// array, in that order, through a buffered writer.
func Write(path string, t *trie.CompiledTrie) (err error) {
	f, ferr := os.Create(path)
	if ferr != nil {
		return wrapErr("create", path, ferr)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = wrapErr("close", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)

	var header [headerSize]byte
	binary.LittleEndian.PutUint64(header[0:8], uint64(len(t.Nodes)))
	binary.LittleEndian.PutUint64(header[8:16], uint64(len(t.Chars)))
	binary.LittleEndian.PutUint64(header[16:24], uint64(len(t.Ranges)))

	if _, werr := w.Write(header[:]); werr != nil {
		return wrapErr("write", path, werr)
	}
	if _, werr := w.Write(trie.NodesToBytes(t.Nodes)); werr != nil {
		return wrapErr("write", path, werr)
	}
	if _, werr := w.WriteString(t.Chars); werr != nil {
		return wrapErr("write", path, werr)
	}
	if _, werr := w.Write(trie.RangeElementsToBytes(t.Ranges)); werr != nil {
		return wrapErr("write", path, werr)
	}

	if ferr := w.Flush(); ferr != nil {
		return wrapErr("flush", path, ferr)
	}
	return nil
}
