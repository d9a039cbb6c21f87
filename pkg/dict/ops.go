package dict

// findInTable searches table ti for key, returning the matching entry
// and, if found, the entry immediately preceding it in the chain (nil if
// it is the bucket head).
func (d *Dict) findInTable(ti int, key any, h uint64) (entry, prev *Entry) {
	t := &d.ht[ti]
	if t.used == 0 {
		return nil, nil
	}
	idx := bucketIndex(h, t)
	var p *Entry
	for e := t.buckets[idx]; e != nil; e = e.next {
		if d.typ.keysEqual(d, e.key, key) {
			return e, p
		}
		p = e
	}
	return nil, nil
}

// Find returns the entry for key, or nil if absent (dictFind).
func (d *Dict) Find(key any) *Entry {
	if d.Size() == 0 {
		return nil
	}
	d.rehashStepIfDue()

	h := d.typ.HashFunction(key)
	if e, _ := d.findInTable(0, key, h); e != nil {
		return e
	}
	if d.isRehashing() {
		if e, _ := d.findInTable(1, key, h); e != nil {
			return e
		}
	}
	return nil
}

// FetchValue returns the value for key and whether it was found
// (dictFetchValue).
func (d *Dict) FetchValue(key any) (Value, bool) {
	e := d.Find(key)
	if e == nil {
		return Value{}, false
	}
	return e.value, true
}

// FindByHash searches both tables' bucket for h, handing every
// candidate entry to match, without re-hashing the key itself
// (dictFindEntryRefByPtrAndHash's spirit, used internally by Scan
// callers that already have a hash).
func (d *Dict) FindByHash(h uint64, match func(*Entry) bool) *Entry {
	for ti := 0; ti < 2; ti++ {
		t := &d.ht[ti]
		if t.used == 0 {
			continue
		}
		idx := bucketIndex(h, t)
		for e := t.buckets[idx]; e != nil; e = e.next {
			if match(e) {
				return e
			}
		}
		if !d.isRehashing() {
			break
		}
	}
	return nil
}

// targetTable returns the table new insertions should land in: ht[1]
// while rehashing is in progress, ht[0] otherwise (spec.md §4.1.2,
// Invariant I3).
func (d *Dict) targetTable() int {
	if d.isRehashing() {
		return 1
	}
	return 0
}

// AddRaw is the primitive insertion operation (dictAddRaw): if key
// exists, existing is set to the found entry and AddRaw returns nil;
// otherwise a new entry is linked in with a zero Value and returned for
// the caller to fill in.
func (d *Dict) AddRaw(key any, existing **Entry) *Entry {
	d.rehashStepIfDue()

	h := d.typ.HashFunction(key)
	if e, _ := d.findInTable(0, key, h); e != nil {
		if existing != nil {
			*existing = e
		}
		return nil
	}
	if d.isRehashing() {
		if e, _ := d.findInTable(1, key, h); e != nil {
			if existing != nil {
				*existing = e
			}
			return nil
		}
	}

	d.expandIfNeeded()

	ti := d.targetTable()
	t := &d.ht[ti]
	idx := bucketIndex(h, t)

	e := &Entry{key: d.typ.dupKey(d, key)}
	if n := d.typ.metadataSize(d); n > 0 {
		e.meta = make([]byte, n)
	}
	e.next = t.buckets[idx]
	t.buckets[idx] = e
	t.used++

	return e
}

// Add inserts a new (key, value); returns ErrKeyExists if key is already
// present, leaving d unmodified.
func (d *Dict) Add(key any, value Value) error {
	var existing *Entry
	e := d.AddRaw(key, &existing)
	if e == nil {
		return ErrKeyExists
	}
	e.value = d.typ.dupVal(d, value)
	return nil
}

// AddOrFind inserts key with value if absent, or returns the
// existing entry unchanged (dictAddOrFind). created reports whether a
// new entry was allocated.
func (d *Dict) AddOrFind(key any, value Value) (entry *Entry, created bool) {
	var existing *Entry
	e := d.AddRaw(key, &existing)
	if e == nil {
		return existing, false
	}
	e.value = d.typ.dupVal(d, value)
	return e, true
}

// Replace inserts key/value if key is absent, or overwrites the existing
// entry's value otherwise. Returns true if a new entry was inserted
// (dictReplace). The prior value is destroyed only after the new value
// is stored, so self-referential updates (e.g. incref-then-decref) are
// safe, and Replace is idempotent under an idempotent ValDup/ValDestructor.
func (d *Dict) Replace(key any, value Value) bool {
	var existing *Entry
	e := d.AddRaw(key, &existing)
	if e != nil {
		e.value = d.typ.dupVal(d, value)
		return true
	}

	old := existing.value
	existing.value = d.typ.dupVal(d, value)
	d.typ.destroyVal(d, old)
	return false
}

// Delete removes key's entry, invoking the configured key/value
// destructors in (value, key) order. Returns ErrKeyNotFound if key is
// absent.
func (d *Dict) Delete(key any) error {
	e := d.unlink(key)
	if e == nil {
		return ErrKeyNotFound
	}
	d.destroyEntry(e)
	return nil
}

// Unlink detaches key's entry from the dictionary without destroying it,
// returning it for the caller to later pass to FreeUnlinkedEntry.
// Returns nil if key is absent.
func (d *Dict) Unlink(key any) *Entry {
	return d.unlink(key)
}

func (d *Dict) unlink(key any) *Entry {
	if d.Size() == 0 {
		return nil
	}
	d.rehashStepIfDue()

	h := d.typ.HashFunction(key)
	for ti := 0; ti < 2; ti++ {
		t := &d.ht[ti]
		if t.used == 0 {
			if !d.isRehashing() {
				break
			}
			continue
		}
		idx := bucketIndex(h, t)
		var prev *Entry
		for e := t.buckets[idx]; e != nil; e = e.next {
			if d.typ.keysEqual(d, e.key, key) {
				if prev != nil {
					prev.next = e.next
				} else {
					t.buckets[idx] = e.next
				}
				t.used--
				e.next = nil
				return e
			}
			prev = e
		}
		if !d.isRehashing() {
			break
		}
	}
	return nil
}

// FreeUnlinkedEntry invokes value/key destructors on an entry previously
// detached by Unlink.
func (d *Dict) FreeUnlinkedEntry(e *Entry) {
	if e == nil {
		return
	}
	d.destroyEntry(e)
}

// destroyEntry runs destructors in (value, key) order, per spec.md §4.1.6.
func (d *Dict) destroyEntry(e *Entry) {
	d.typ.destroyVal(d, e.value)
	d.typ.destroyKey(d, e.key)
}

// EmptyCallback is invoked at preconfigured progress milestones during
// Empty, mirroring dictEmpty's callback used by higher layers for
// incremental clearing.
type EmptyCallback func(d *Dict)

// emptyMilestoneBuckets is how many buckets Empty processes between
// callback invocations.
const emptyMilestoneBuckets = 1 << 16

// Empty frees every entry (invoking destructors), resets both tables,
// and calls cb at preconfigured progress milestones.
func (d *Dict) Empty(cb EmptyCallback) {
	for ti := 0; ti < 2; ti++ {
		t := &d.ht[ti]
		for i := range t.buckets {
			if cb != nil && i > 0 && uint64(i)%emptyMilestoneBuckets == 0 {
				cb(d)
			}
			for e := t.buckets[i]; e != nil; {
				next := e.next
				d.destroyEntry(e)
				e = next
			}
			t.buckets[i] = nil
		}
	}
	d.ht[0] = newEmptyTable()
	d.ht[1] = newEmptyTable()
	d.rehashIdx = -1
}

// Release empties the dictionary and drops its tables; in Go there is no
// explicit free of d itself, the caller simply drops its reference.
func (d *Dict) Release() {
	d.Empty(nil)
}
