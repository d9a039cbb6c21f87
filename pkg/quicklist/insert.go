package quicklist

import "github.com/coredata-kv/coredata/pkg/listpack"

// InsertBefore inserts value immediately before entry's position
// (quicklistInsertBefore). it, if non-nil, is left untouched here —
// inserts do not reposition an iterator the way deletes do; an insert
// into the iterator's current node at or before its position shifts the
// elements it has yet to visit by one.
func (ql *Quicklist) InsertBefore(it *Iterator, entry *Entry, value []byte) {
	ql.insert(entry.Node, entry.Offset, value, true)
}

// InsertAfter inserts value immediately after entry's position
// (quicklistInsertAfter).
func (ql *Quicklist) InsertAfter(it *Iterator, entry *Entry, value []byte) {
	ql.insert(entry.Node, entry.Offset, value, false)
}

// insert implements the middle-insertion algorithm of spec.md §4.2.1:
// try the current node, then the neighbor on the insertion side, then
// fall back to a node split.
func (ql *Quicklist) insert(n *Node, offset int, value []byte, before bool) {
	e := listpack.EntryFromBytes(value)

	if isLargeElement(e.EncodedLen(), ql.packedThreshold) {
		plain := newPlainNode(value)
		if before {
			ql.insertNodeBefore(n, plain)
		} else {
			ql.insertNodeAfter(n, plain)
		}
		ql.count++
		ql.enforceCompressionPolicy()
		return
	}

	if n.IsPlain() {
		fresh := newPackedNode(e)
		if before {
			ql.insertNodeBefore(n, fresh)
		} else {
			ql.insertNodeAfter(n, fresh)
		}
		ql.count++
		ql.enforceCompressionPolicy()
		return
	}

	insertOffset := offset
	if !before {
		insertOffset = offset + 1
	}

	ql.ensureDecompressed(n)

	// Step 2: the current node can accept it directly.
	if ql.nodeLimitOK(n.count+1, n.lp.Bytes()+e.EncodedLen()) {
		n.lp.Insert(insertOffset, e)
		n.count++
		n.sz = n.lp.Bytes()
		ql.count++
		ql.attemptMerge(n)
		ql.enforceCompressionPolicy()
		return
	}

	// Step 3: inserting at the node's start, previous node can accept.
	if insertOffset == 0 && ql.canAccept(n.prev, e) {
		n.prev.lp.PushTail(e)
		n.prev.count++
		n.prev.sz = n.prev.lp.Bytes()
		ql.count++
		ql.attemptMerge(n.prev)
		ql.enforceCompressionPolicy()
		return
	}

	// Step 4: inserting at the node's end, next node can accept.
	if insertOffset == n.count && ql.canAccept(n.next, e) {
		n.next.lp.PushHead(e)
		n.next.count++
		n.next.sz = n.next.lp.Bytes()
		ql.count++
		ql.attemptMerge(n.next)
		ql.enforceCompressionPolicy()
		return
	}

	// Step 5: split n at insertOffset, hold the new element in a fresh
	// node between the two halves.
	ql.splitInsert(n, insertOffset, e)
	ql.count++
	ql.enforceCompressionPolicy()
}

func (ql *Quicklist) splitInsert(n *Node, offset int, e listpack.Entry) {
	left, right := n.lp.Split(offset)

	n.lp = left
	n.count = left.Count()
	n.sz = left.Bytes()

	mid := newPackedNode(e)
	ql.insertNodeAfter(n, mid)

	rightNode := newPackedNodeFromListpack(right)
	ql.insertNodeAfter(mid, rightNode)

	if rightNode.count == 0 {
		ql.unlinkNode(rightNode)
	}
	if n.count == 0 {
		ql.unlinkNode(n)
	}
	ql.attemptMerge(mid)
}
