package quicklist

// Entry references one element's position: the Node it lives in and
// its offset within that node's listpack (0 and ignored for PLAIN
// nodes), plus the element's materialized value. It plays the role of
// quicklistEntry.
type Entry struct {
	Node   *Node
	Offset int
	Value  []byte
	IsInt  bool
	Int    int64
}

// locate finds the node holding element idx (negative idx counts from
// the tail) and its offset within that node, walking from whichever
// end is closer (spec.md §4.2.3).
func (ql *Quicklist) locate(idx int64) (*Node, int) {
	if idx < 0 {
		idx += int64(ql.count)
	}
	if idx < 0 || idx >= int64(ql.count) {
		return nil, 0
	}

	if idx < int64(ql.count)/2 {
		n := ql.head
		remaining := idx
		for n != nil {
			if remaining < int64(n.count) {
				return n, int(remaining)
			}
			remaining -= int64(n.count)
			n = n.next
		}
	} else {
		n := ql.tail
		remaining := int64(ql.count) - 1 - idx
		for n != nil {
			if remaining < int64(n.count) {
				return n, n.count - 1 - int(remaining)
			}
			remaining -= int64(n.count)
			n = n.prev
		}
	}
	return nil, 0
}

func (ql *Quicklist) entryAt(n *Node, off int) *Entry {
	if n.IsPlain() {
		return &Entry{Node: n, Offset: 0, Value: n.plain}
	}
	ql.ensureDecompressed(n)
	e, ok := n.lp.Get(off)
	if !ok {
		return &Entry{Node: n, Offset: off}
	}
	return &Entry{Node: n, Offset: off, Value: e.AsBytes(), IsInt: e.IsInt, Int: e.Int}
}

// EntryAtIndex returns the element at idx (negative counts from the
// tail), or false if out of range (spec.md §7 treats quicklist index
// errors as a bool/nil return, not a Go error).
func (ql *Quicklist) EntryAtIndex(idx int64) (*Entry, bool) {
	n, off := ql.locate(idx)
	if n == nil {
		return nil, false
	}
	return ql.entryAt(n, off), true
}
