package quicklist

// attemptMerge tries to pull n's neighbors into it where the combined
// listpack still satisfies the fill policy, preferring symmetric
// progress: first absorb the next node, then let the previous node
// absorb n (spec.md §4.2.1, "pull neighbors into center"). n may be
// unlinked by the second step; callers that still need n's identity
// afterward (an iterator cursor, a loop walking node-by-node) should
// use mergeForward instead.
func (ql *Quicklist) attemptMerge(n *Node) {
	if n == nil {
		return
	}
	if n.next != nil {
		ql.tryMergeNodes(n, n.next)
	}
	if n.prev != nil {
		ql.tryMergeNodes(n.prev, n)
	}
}

// mergeForward absorbs n's next neighbor into n, never merging n itself
// away. Used by DelEntry and DelRange, which must keep n's identity
// valid for an iterator cursor or a loop cursor after the call.
func (ql *Quicklist) mergeForward(n *Node) {
	if n == nil {
		return
	}
	ql.tryMergeNodes(n, n.next)
}

// tryMergeNodes absorbs right's elements into left if both are PACKED
// and the combined size still satisfies fill, unlinking right on
// success.
func (ql *Quicklist) tryMergeNodes(left, right *Node) bool {
	if left == nil || right == nil {
		return false
	}
	if left.container != ContainerPacked || right.container != ContainerPacked {
		return false
	}
	ql.ensureDecompressed(left)
	ql.ensureDecompressed(right)

	combinedCount := left.count + right.count
	combinedSz := left.lp.Bytes() + right.lp.Bytes()
	if !ql.nodeLimitOK(combinedCount, combinedSz) {
		return false
	}

	left.lp.Merge(right.lp)
	left.count = combinedCount
	left.sz = left.lp.Bytes()
	ql.unlinkNode(right)
	return true
}
