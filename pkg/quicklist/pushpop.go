package quicklist

import "github.com/coredata-kv/coredata/pkg/listpack"

// PushHead pushes value onto the head, returning true if a new node
// was created, false if it was absorbed into the existing head node
// (quicklistPushHead).
func (ql *Quicklist) PushHead(value []byte) bool { return ql.push(value, Head) }

// PushTail is PushHead's tail-end counterpart.
func (ql *Quicklist) PushTail(value []byte) bool { return ql.push(value, Tail) }

func (ql *Quicklist) push(value []byte, where Where) bool {
	e := listpack.EntryFromBytes(value)

	var target *Node
	if where == Head {
		target = ql.head
	} else {
		target = ql.tail
	}

	created := false
	switch {
	case isLargeElement(e.EncodedLen(), ql.packedThreshold):
		n := newPlainNode(value)
		if where == Head {
			ql.linkNodeHead(n)
		} else {
			ql.linkNodeTail(n)
		}
		created = true
	case ql.canAccept(target, e):
		if where == Head {
			target.lp.PushHead(e)
		} else {
			target.lp.PushTail(e)
		}
		target.count++
		target.sz = target.lp.Bytes()
	default:
		n := newPackedNode(e)
		if where == Head {
			ql.linkNodeHead(n)
		} else {
			ql.linkNodeTail(n)
		}
		created = true
	}

	ql.count++
	ql.enforceCompressionPolicy()
	return created
}

// Pop removes and returns the element at the given end
// (quicklistPop).
func (ql *Quicklist) Pop(where Where) ([]byte, bool) {
	v, ok := ql.PopCustom(where, nil)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// PopCustom removes the element at the given end and, if saver is
// non-nil, passes the raw bytes through it before returning
// (quicklistPopCustom); saver lets a caller deserialize in place
// instead of always handling []byte.
func (ql *Quicklist) PopCustom(where Where, saver func([]byte) any) (any, bool) {
	var n *Node
	if where == Head {
		n = ql.head
	} else {
		n = ql.tail
	}
	if n == nil {
		return nil, false
	}

	var data []byte
	if n.IsPlain() {
		data = n.plain
		ql.unlinkNode(n)
	} else {
		ql.ensureDecompressed(n)
		var e listpack.Entry
		var ok bool
		if where == Head {
			e, ok = n.lp.PopHead()
		} else {
			e, ok = n.lp.PopTail()
		}
		if !ok {
			return nil, false
		}
		data = e.AsBytes()
		n.count--
		n.sz = n.lp.Bytes()
		if n.count == 0 {
			ql.unlinkNode(n)
		}
	}

	ql.count--
	ql.enforceCompressionPolicy()

	if saver != nil {
		return saver(data), true
	}
	return data, true
}

// Rotate pops the tail and pushes it onto the head in one step; a
// no-op on an empty list (quicklistRotate).
func (ql *Quicklist) Rotate() {
	if ql.count == 0 {
		return
	}
	v, ok := ql.PopCustom(Tail, nil)
	if !ok {
		return
	}
	ql.PushHead(v.([]byte))
}
