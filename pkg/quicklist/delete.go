package quicklist

// DelEntry removes the element at entry's position and, if it is
// non-nil and currently sitting on that node, repositions it so the
// following Next yields the successor (spec.md §4.2.6).
func (ql *Quicklist) DelEntry(it *Iterator, entry *Entry) {
	n := entry.Node
	off := entry.Offset

	var succNode *Node
	succOffset := 0

	if n.IsPlain() {
		succNode = n.next
		ql.unlinkNode(n)
	} else {
		ql.ensureDecompressed(n)
		n.lp.DeleteRange(off, 1)
		n.count--
		n.sz = n.lp.Bytes()
		if n.count == 0 {
			succNode = n.next
			ql.unlinkNode(n)
		} else {
			succNode = n
			succOffset = off
			// A merge would absorb the node the iterator has already
			// moved on to, so it is skipped in that case.
			if it == nil || it.node != n.next {
				ql.mergeForward(n)
			}
		}
	}

	ql.count--
	it.afterDelete(n, succNode, succOffset)
	ql.enforceCompressionPolicy()
}

// DelRange removes up to count elements starting at start (negative
// start counts from the tail), unlinking whole nodes where possible
// and otherwise slicing a node's listpack and retrying a merge
// (quicklistDelRange; spec.md §4.2.4 scenario S6: del_range(10, 30)
// removes the 30 elements [10, 40)). Returns true if any element was
// removed.
func (ql *Quicklist) DelRange(start, count int64) bool {
	total := int64(ql.count)
	if total == 0 || count <= 0 {
		return false
	}

	s := start
	if s < 0 {
		s += total
		if s < 0 {
			s = 0
		}
	}
	if s >= total {
		return false
	}

	remaining := int(count)
	if avail := int(total - s); remaining > avail {
		remaining = avail
	}

	node, offset := ql.locate(s)
	removed := false

	for node != nil && remaining > 0 {
		if node.IsPlain() {
			next := node.next
			ql.unlinkNode(node)
			ql.count--
			remaining--
			removed = true
			node = next
			offset = 0
			continue
		}

		ql.ensureDecompressed(node)
		avail := node.count - offset
		take := remaining
		if take > avail {
			take = avail
		}

		node.lp.DeleteRange(offset, take)
		node.count -= take
		node.sz = node.lp.Bytes()
		ql.count -= uint64(take)
		remaining -= take
		removed = true

		if node.count == 0 {
			next := node.next
			ql.unlinkNode(node)
			node = next
			offset = 0
		} else {
			before := node.count
			ql.mergeForward(node)
			if node.count > before {
				// The next node was merged in; its elements now start
				// at offset before and deletion continues there.
				offset = before
			} else {
				node = node.next
				offset = 0
			}
		}
	}

	ql.enforceCompressionPolicy()
	return removed
}
