package dict

import "github.com/coredata-kv/coredata/pkg/dictstat"

// ScanFunc is invoked once per visited entry during Scan.
type ScanFunc func(e *Entry)

// BucketFunc is invoked once per visited bucket, before its chain is
// walked, giving callers a hook for bucket-level maintenance
// (dictScanBucketFunction).
type BucketFunc func(d *Dict, table int, index uint64)

// rev reverses the bits of v, the building block of the cursor's
// reverse-bit increment (spec.md §4.1.4).
func rev(v uint64) uint64 {
	s := uint(64)
	mask := ^uint64(0)
	for {
		s >>= 1
		if s == 0 {
			break
		}
		mask ^= mask << s
		v = ((v >> s) & mask) | ((v << s) & ^mask)
	}
	return v
}

func visitChain(t *table, idx uint64, fn ScanFunc) {
	e := t.buckets[idx]
	for e != nil {
		next := e.next // captured first: fn may delete e
		fn(e)
		e = next
	}
}

// Scan visits a slice of the dictionary determined by cursor and
// returns the next cursor to pass on the following call; iteration is
// complete once the returned cursor is 0. Scan is stable across
// resizes (no omission of keys present at scan-start) but may revisit
// keys that straddle a resize (spec.md §4.1.4, Invariant/Property 3).
func (d *Dict) Scan(cursor uint64, fn ScanFunc, bucketFn BucketFunc) uint64 {
	if d.Size() == 0 {
		return 0
	}

	var m0, m1 uint64

	if !d.isRehashing() {
		t0 := &d.ht[0]
		m0 = t0.mask()
		idx := cursor & m0
		if bucketFn != nil {
			bucketFn(d, 0, idx)
		}
		visitChain(t0, idx, fn)
	} else {
		ti0, ti1 := 0, 1
		if d.ht[0].size() > d.ht[1].size() {
			ti0, ti1 = 1, 0
		}
		t0 := &d.ht[ti0]
		t1 := &d.ht[ti1]
		m0 = t0.mask()
		m1 = t1.mask()

		idx0 := cursor & m0
		if bucketFn != nil {
			bucketFn(d, ti0, idx0)
		}
		visitChain(t0, idx0, fn)

		for {
			idx1 := cursor & m1
			if bucketFn != nil {
				bucketFn(d, ti1, idx1)
			}
			visitChain(t1, idx1, fn)

			cursor |= ^m1
			cursor = rev(cursor)
			cursor++
			cursor = rev(cursor)

			if cursor&(m0^m1) == 0 {
				break
			}
		}
	}

	cursor |= ^m0
	cursor = rev(cursor)
	cursor++
	cursor = rev(cursor)

	if cursor == 0 {
		dictstat.ScanCursors.Inc()
	}
	return cursor
}
