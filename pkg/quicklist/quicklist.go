// Package quicklist implements a doubly-linked list of compressible,
// size-capped listpack nodes — spec.md §4.2. It is grounded on
// _examples/original_source/src/quicklist.h for the public contract and
// on pkg/dict for this module's established idiom (functional options,
// sentinel errors, Prometheus counters via pkg/dictstat) since no
// example repo in the retrieval pack implements a comparable
// linked-block container.
package quicklist

import "github.com/coredata-kv/coredata/pkg/listpack"

// Where selects an end of the list (spec.md §6: QUICKLIST_HEAD=0,
// QUICKLIST_TAIL=-1).
type Where int

const (
	Head Where = 0
	Tail Where = -1
)

// Direction selects which way an Iterator walks.
type Direction int

const (
	FromHead Direction = iota
	FromTail
)

// Quicklist is a doubly-linked list of Node values, each a listpack (or
// a single oversized PLAIN buffer), subject to a fill-size cap and an
// optional LZF compression depth.
type Quicklist struct {
	head, tail *Node
	count      uint64 // total elements across all nodes
	length     uint64 // number of nodes

	fill            int
	compress        int
	packedThreshold uint64

	bookmarks []bookmark
}

// Create returns an empty quicklist with fill=-2 (8 KiB per-node cap)
// and compress=0 (no compression), matching quicklistCreate.
func Create() *Quicklist {
	return New(-2, 0)
}

// New returns an empty quicklist with the given fill and compress
// settings (quicklistNew).
func New(fill, compress int) *Quicklist {
	return &Quicklist{
		fill:            fill,
		compress:        compress,
		packedThreshold: DefaultPackedThreshold,
	}
}

// SetFill updates the per-node size cap.
func (ql *Quicklist) SetFill(fill int) { ql.fill = fill }

// SetCompressDepth updates the compression depth.
func (ql *Quicklist) SetCompressDepth(depth int) {
	ql.compress = depth
	ql.enforceCompressionPolicy()
}

// SetOptions updates both fill and compress in one call.
func (ql *Quicklist) SetOptions(fill, depth int) {
	ql.fill = fill
	ql.compress = depth
	ql.enforceCompressionPolicy()
}

// SetPackedThreshold overrides the element size above which a value is
// stored as its own PLAIN node. A size of 0 resets it to
// DefaultPackedThreshold (quicklistSetPackedThreshold).
func (ql *Quicklist) SetPackedThreshold(sz uint64) bool {
	if sz == 0 {
		sz = DefaultPackedThreshold
	}
	ql.packedThreshold = sz
	return true
}

// Count returns the total number of elements across all nodes.
func (ql *Quicklist) Count() uint64 { return ql.count }

// Len returns the number of nodes.
func (ql *Quicklist) Len() uint64 { return ql.length }

// --- linking ----------------------------------------------------------

func (ql *Quicklist) linkNodeHead(n *Node) {
	n.next = ql.head
	if ql.head != nil {
		ql.head.prev = n
	}
	ql.head = n
	if ql.tail == nil {
		ql.tail = n
	}
	ql.length++
}

func (ql *Quicklist) linkNodeTail(n *Node) {
	n.prev = ql.tail
	if ql.tail != nil {
		ql.tail.next = n
	}
	ql.tail = n
	if ql.head == nil {
		ql.head = n
	}
	ql.length++
}

func (ql *Quicklist) insertNodeBefore(old, n *Node) {
	n.prev = old.prev
	n.next = old
	if old.prev != nil {
		old.prev.next = n
	} else {
		ql.head = n
	}
	old.prev = n
	ql.length++
}

func (ql *Quicklist) insertNodeAfter(old, n *Node) {
	n.next = old.next
	n.prev = old
	if old.next != nil {
		old.next.prev = n
	} else {
		ql.tail = n
	}
	old.next = n
	ql.length++
}

// unlinkNode detaches n from the list and retargets any bookmark that
// pointed to it (spec.md §4.2.5).
func (ql *Quicklist) unlinkNode(n *Node) {
	successor := n.next
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		ql.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		ql.tail = n.prev
	}
	n.prev, n.next = nil, nil
	ql.length--
	ql.retargetBookmarks(n, successor)
}

// canAccept reports whether node n (if non-nil and PACKED) can absorb
// one more element e under the current fill policy, decompressing n
// first if needed.
func (ql *Quicklist) canAccept(n *Node, e listpack.Entry) bool {
	if n == nil || n.container != ContainerPacked {
		return false
	}
	if isLargeElement(e.EncodedLen(), ql.packedThreshold) {
		return false
	}
	ql.ensureDecompressed(n)
	return ql.nodeLimitOK(n.count+1, n.lp.Bytes()+e.EncodedLen())
}

// GetLzf returns the node's compressed payload and true if it is
// currently LZF-encoded (quicklistGetLzf).
func (ql *Quicklist) GetLzf(n *Node) ([]byte, bool) {
	if n.encoding != EncodingLZF {
		return nil, false
	}
	return n.compressed, true
}

// Compare reports whether the element at entry equals data
// (quicklistCompare).
func (ql *Quicklist) Compare(entry *Entry, data []byte) bool {
	return string(entry.Value) == string(data)
}
