package quicklist

// Iterator walks a quicklist's elements in one direction, decompressing
// nodes on entry and settling them back against compression policy on
// exit (spec.md §4.2, "on return, if the node boundary was crossed, the
// left-behind node is recompressed per policy").
type Iterator struct {
	ql        *Quicklist
	node      *Node
	offset    int
	direction Direction
}

// GetIterator returns an iterator positioned at the given end.
func (ql *Quicklist) GetIterator(direction Direction) *Iterator {
	it := &Iterator{ql: ql, direction: direction}
	if direction == FromHead {
		it.node = ql.head
		it.offset = 0
	} else {
		it.node = ql.tail
		if it.node != nil {
			it.offset = it.node.count - 1
		}
	}
	return it
}

// GetIteratorAtIdx returns an iterator positioned at idx, walking node
// links to get there (spec.md §4.2.3).
func (ql *Quicklist) GetIteratorAtIdx(direction Direction, idx int64) *Iterator {
	n, off := ql.locate(idx)
	if n == nil {
		return nil
	}
	return &Iterator{ql: ql, node: n, offset: off, direction: direction}
}

// GetIteratorEntryAtIdx returns both an iterator at idx and the entry
// found there, in one call.
func (ql *Quicklist) GetIteratorEntryAtIdx(idx int64) (*Iterator, *Entry) {
	it := ql.GetIteratorAtIdx(FromHead, idx)
	if it == nil {
		return nil, nil
	}
	return it, ql.entryAt(it.node, it.offset)
}

// SetDirection changes the direction subsequent Next calls walk.
func (it *Iterator) SetDirection(direction Direction) { it.direction = direction }

// Next returns the current element and advances, or returns
// (nil, false) once iteration is exhausted.
func (it *Iterator) Next() (*Entry, bool) {
	if it.node == nil {
		return nil, false
	}
	ql := it.ql
	ql.ensureDecompressed(it.node)

	entry := ql.entryAt(it.node, it.offset)

	if it.direction == FromHead {
		it.offset++
		if it.offset >= it.node.count {
			old := it.node
			it.node = it.node.next
			it.offset = 0
			ql.settleOne(old)
		}
	} else {
		it.offset--
		if it.offset < 0 {
			old := it.node
			it.node = it.node.prev
			if it.node != nil {
				it.offset = it.node.count - 1
			}
			ql.settleOne(old)
		}
	}
	return entry, true
}

// Release settles the iterator's current node against compression
// policy (quicklistReleaseIterator).
func (it *Iterator) Release() {
	if it.node != nil {
		it.ql.settleOne(it.node)
	}
}

// afterDelete repositions a head-walking iterator so the following Next
// yields the element that followed the one just deleted (spec.md §4.2.6).
// succNode/succOffset identify that successor directly, since n may
// already be unlinked by the time this runs. A tail-walking iterator
// already sits on the element before the deleted one, whose offset the
// delete did not change, so it is left as it is.
func (it *Iterator) afterDelete(n *Node, succNode *Node, succOffset int) {
	if it == nil || it.node != n || it.direction != FromHead {
		return
	}
	it.node = succNode
	it.offset = succOffset
}
