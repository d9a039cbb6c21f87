package quicklist

import "github.com/coredata-kv/coredata/pkg/listpack"

// Dup returns a deep copy of the quicklist: every node's payload is
// cloned, but bookmarks are not carried over (quicklistDup — listed in
// quicklist.h's prototypes but not named in spec.md's operation list;
// added per SPEC_FULL.md §5 for cmd/coredata-bench's snapshot-before-
// destructive-phase use).
func (ql *Quicklist) Dup() *Quicklist {
	out := New(ql.fill, ql.compress)
	out.packedThreshold = ql.packedThreshold

	for n := ql.head; n != nil; n = n.next {
		var clone *Node
		switch {
		case n.IsPlain():
			clone = newPlainNode(n.plain)
		case n.encoding == EncodingLZF:
			clone = &Node{
				compressed: append([]byte(nil), n.compressed...),
				count:      n.count,
				sz:         n.sz,
				encoding:   EncodingLZF,
				container:  ContainerPacked,
			}
		default:
			clone = newPackedNodeFromListpack(n.lp.Clone())
		}
		out.linkNodeTail(clone)
	}
	out.count = ql.count
	return out
}

// AppendPacked adopts lp as a new tail node without copying it
// (quicklistAppendListpack from quicklist.h's bulk-adoption prototypes;
// added per SPEC_FULL.md §5 for bulk-loading use cases).
func (ql *Quicklist) AppendPacked(lp *listpack.Listpack) {
	n := newPackedNodeFromListpack(lp)
	ql.linkNodeTail(n)
	ql.count += uint64(n.count)
	ql.enforceCompressionPolicy()
}

// AppendPlain adopts data as a new PLAIN tail node
// (quicklistAppendPlainNode).
func (ql *Quicklist) AppendPlain(data []byte) {
	n := newPlainNode(data)
	ql.linkNodeTail(n)
	ql.count++
	ql.enforceCompressionPolicy()
}
