package dict

// Type is the key/value behavior policy a Dict consumes from its
// caller — the Go equivalent of the original's dictType struct
// (spec.md §6). HashFunction is required; every other field is
// optional, matching the documented fallbacks: an absent KeyCompare
// defaults to Go's == identity comparison, and absent KeyDup/ValDup
// means the dictionary adopts caller values by reference.
type Type struct {
	// HashFunction computes a key's hash. Required.
	HashFunction func(key any) uint64

	// KeyDup, if set, is called to duplicate a key on insertion.
	KeyDup func(d *Dict, key any) any
	// ValDup, if set, is called to duplicate a value on insertion or
	// replacement.
	ValDup func(d *Dict, val Value) Value

	// KeyCompare reports whether two keys are equal. Defaults to Go's
	// == when nil.
	KeyCompare func(d *Dict, a, b any) bool

	// KeyDestructor, if set, is invoked when a key's owning entry is
	// freed.
	KeyDestructor func(d *Dict, key any)
	// ValDestructor, if set, is invoked when a value's owning entry is
	// freed, after the new value (on Replace) has already been stored.
	ValDestructor func(d *Dict, val Value)

	// ExpandAllowed, if set, is consulted by TryExpand to veto growth
	// under memory pressure.
	ExpandAllowed func(moreMem uint64, usedRatio float64) bool

	// EntryMetadataBytes, if set, sizes a trailing metadata region
	// attached to every entry, zero-initialized on allocation and owned
	// entirely by the caller's type policy.
	EntryMetadataBytes func(d *Dict) int
}

func (t *Type) keysEqual(d *Dict, a, b any) bool {
	if t.KeyCompare != nil {
		return t.KeyCompare(d, a, b)
	}
	return a == b
}

func (t *Type) dupKey(d *Dict, key any) any {
	if t.KeyDup != nil {
		return t.KeyDup(d, key)
	}
	return key
}

func (t *Type) dupVal(d *Dict, val Value) Value {
	if t.ValDup != nil {
		return t.ValDup(d, val)
	}
	return val
}

func (t *Type) destroyKey(d *Dict, key any) {
	if t.KeyDestructor != nil {
		t.KeyDestructor(d, key)
	}
}

func (t *Type) destroyVal(d *Dict, val Value) {
	if t.ValDestructor != nil {
		t.ValDestructor(d, val)
	}
}

func (t *Type) metadataSize(d *Dict) int {
	if t.EntryMetadataBytes != nil {
		return t.EntryMetadataBytes(d)
	}
	return 0
}
