package trie

import (
	"unsafe"

	"github.com/mxvdb/vaguedict/internal/errutil"
)

// NodeByteSize and RangeElementByteSize are the on-disk record sizes backing
// the dictionary file's three blobs. Node is a 4-byte header plus a 3-word
// payload (16 bytes total); RangeElement is two 4-byte optional fields
// (8 bytes total). Both structs are declared with same-size fields in
// field order, so Go lays them out with no padding, which is what makes the
// raw reinterpretation below sound.
const (
	NodeByteSize         = 16
	RangeElementByteSize = 8
)

// NodesToBytes reinterprets a Node slice as its raw on-disk bytes, with no
// copy. The result aliases nodes and is only valid as long as nodes is not
// mutated or collected. The layout is host-native and non-portable: it only
// produces a correct file on a little-endian host, matching this module's
// documented non-goal of cross-architecture portability.
func NodesToBytes(nodes []Node) []byte {
	if len(nodes) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&nodes[0])), len(nodes)*NodeByteSize)
}

// NodesFromBytes is the inverse of NodesToBytes: it reinterprets a raw byte
// region (typically a memory-mapped file) as a Node slice with no copy. b's
// length must be a multiple of NodeByteSize, and b must outlive the
// returned slice.
func NodesFromBytes(b []byte) []Node {
	if len(b) == 0 {
		return nil
	}
	errutil.BugOn(len(b)%NodeByteSize != 0, "node array length %d not a multiple of %d", len(b), NodeByteSize)
	return unsafe.Slice((*Node)(unsafe.Pointer(&b[0])), len(b)/NodeByteSize)
}

// RangeElementsToBytes reinterprets a RangeElement slice as its raw on-disk
// bytes, with no copy.
func RangeElementsToBytes(elems []RangeElement) []byte {
	if len(elems) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&elems[0])), len(elems)*RangeElementByteSize)
}

// RangeElementsFromBytes is the inverse of RangeElementsToBytes.
func RangeElementsFromBytes(b []byte) []RangeElement {
	if len(b) == 0 {
		return nil
	}
	errutil.BugOn(len(b)%RangeElementByteSize != 0, "range-element array length %d not a multiple of %d", len(b), RangeElementByteSize)
	return unsafe.Slice((*RangeElement)(unsafe.Pointer(&b[0])), len(b)/RangeElementByteSize)
}
