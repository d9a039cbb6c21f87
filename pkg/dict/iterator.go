package dict

import "github.com/pkg/errors"

// Iterator walks every entry in the dictionary. A safe iterator
// (created via GetSafeIterator) permits concurrent Add/Find/Delete
// calls during its lifetime; an unsafe iterator (GetIterator) forbids
// mutation and checks a fingerprint snapshot on Release, panicking
// (fatal, per spec.md §7) on mismatch.
type Iterator struct {
	d           *Dict
	table       int
	index       int64
	entry       *Entry
	nextEntry   *Entry
	safe        bool
	started     bool
	fingerprint uint64
}

// GetIterator returns an unsafe iterator.
func (d *Dict) GetIterator() *Iterator {
	return &Iterator{d: d, index: -1, table: 0}
}

// GetSafeIterator returns a safe iterator. The rehash pause begins on
// the first call to Next, mirroring dictNext's lazy initialization.
func (d *Dict) GetSafeIterator() *Iterator {
	it := d.GetIterator()
	it.safe = true
	return it
}

// fingerprint mixes (ht[0].version, ht[0].sizeExp, ht[0].used,
// ht[1].version, ht[1].sizeExp, ht[1].used) into a 64-bit sanity value.
// version stands in for the original's raw table-array pointer identity
// (spec.md §9's design note: "any 64-bit mixer with low collision is
// acceptable since the check is only a sanity net") — Go slices can be
// relocated by append/realloc in ways a raw pointer comparison wouldn't
// reliably capture, so this module bumps an explicit version counter
// instead whenever a table is (re)allocated.
func (d *Dict) fingerprint() uint64 {
	return mixFingerprint(
		d.ht[0].version, uint64(d.ht[0].sizeExp), d.ht[0].used,
		d.ht[1].version, uint64(d.ht[1].sizeExp), d.ht[1].used,
	)
}

// mixFingerprint is the original dictFingerprint's integer mixer
// (a multiplicative/shift hash applied cumulatively over each field).
func mixFingerprint(vals ...uint64) uint64 {
	var hash uint64
	for _, v := range vals {
		hash += v
		hash += hash << 10
		hash ^= hash >> 6
	}
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash
}

// Next advances the iterator and returns the next entry, or nil when
// iteration is exhausted. Iteration order is ht[0] buckets 0..size,
// then ht[1] buckets 0..size while a rehash is in progress (spec.md
// §4.1.5); within a bucket, entries are walked most-recently-inserted
// first, since Add prepends.
func (it *Iterator) Next() *Entry {
	for {
		if it.entry == nil {
			if it.index == -1 && it.table == 0 {
				if it.safe {
					it.d.PauseRehashing()
				} else {
					it.fingerprint = it.d.fingerprint()
				}
				it.started = true
			}

			it.index++
			t := &it.d.ht[it.table]
			for uint64(it.index) >= t.size() {
				if it.d.isRehashing() && it.table == 0 {
					it.table = 1
					it.index = 0
					t = &it.d.ht[1]
					if t.size() == 0 {
						return nil
					}
				} else {
					return nil
				}
			}
			it.entry = t.buckets[it.index]
		} else {
			it.entry = it.nextEntry
		}

		if it.entry != nil {
			it.nextEntry = it.entry.next
			return it.entry
		}
	}
}

// Release ends the iterator's lifetime: a safe iterator resumes
// rehashing; an unsafe iterator that was mutated during its lifetime
// panics with ErrBadIterator (fatal, matching the original's assertion).
func (it *Iterator) Release() {
	if !it.started {
		return
	}
	if it.safe {
		it.d.ResumeRehashing()
		return
	}
	if it.fingerprint != it.d.fingerprint() {
		panic(errors.WithStack(ErrBadIterator))
	}
}
