package quicklist

import "github.com/coredata-kv/coredata/pkg/listpack"

// Encoding identifies whether a node's payload sits in the clear or
// behind an LZF compressor (spec.md §6 constants RAW=1, LZF=2).
type Encoding int

const (
	EncodingRaw Encoding = 1
	EncodingLZF Encoding = 2
)

// Container identifies whether a node holds one oversized element as a
// raw buffer (PLAIN) or a listpack of one-or-more elements (PACKED).
type Container int

const (
	ContainerPlain  Container = 1
	ContainerPacked Container = 2
)

// Node is one link of the quicklist's doubly-linked list. A PACKED node
// owns an *listpack.Listpack while RAW; once LZF-compressed, lp is nil
// and compressed holds the serialized-then-compressed bytes. A PLAIN
// node never has a listpack at all — it stores exactly one element in
// plain.
type Node struct {
	prev, next *Node

	lp         *listpack.Listpack // nil unless container==Packed && encoding==Raw
	compressed []byte             // nil unless encoding==LZF
	plain      []byte             // nil unless container==Plain

	count int // element count (always 1 for Plain)
	sz    int // uncompressed byte size (listpack.Bytes() or len(plain))

	encoding  Encoding
	container Container

	// recompress marks a node that was decompressed to satisfy a touch
	// (iteration, insert, delete) and is owed a re-settle against
	// compression policy once the caller is done with it (spec.md
	// §4.2.2 step 1: "sets recompress if it was LZF").
	recompress bool
	// attemptedCompress is a test-only marker: LZF was tried on this
	// node at least once, regardless of outcome (spec.md §4.2.2).
	attemptedCompress bool
}

// IsPlain reports whether the node is a PLAIN (single oversized
// element) node.
func (n *Node) IsPlain() bool { return n.container == ContainerPlain }

// Encoding reports the node's current storage encoding.
func (n *Node) Encoding() Encoding { return n.encoding }

// Count returns the number of elements the node holds.
func (n *Node) Count() int { return n.count }

// Sz returns the node's uncompressed byte size.
func (n *Node) Sz() int { return n.sz }

func newPackedNode(e listpack.Entry) *Node {
	lp := listpack.New()
	lp.PushTail(e)
	return &Node{
		lp:        lp,
		count:     1,
		sz:        lp.Bytes(),
		encoding:  EncodingRaw,
		container: ContainerPacked,
	}
}

func newPackedNodeFromListpack(lp *listpack.Listpack) *Node {
	return &Node{
		lp:        lp,
		count:     lp.Count(),
		sz:        lp.Bytes(),
		encoding:  EncodingRaw,
		container: ContainerPacked,
	}
}

func newPlainNode(data []byte) *Node {
	return &Node{
		plain:     append([]byte(nil), data...),
		count:     1,
		sz:        len(data),
		encoding:  EncodingRaw,
		container: ContainerPlain,
	}
}
