package dict

// GetRandomKey returns a uniformly-ish sampled entry (biased toward
// short chains, matching the original's documented trade-off): during
// rehash it picks a uniform slot across both tables' remaining range
// and linearly probes past empty buckets; once a non-empty bucket is
// found, it picks uniformly among its chain (spec.md §4.1.3).
func (d *Dict) GetRandomKey() *Entry {
	if d.Size() == 0 {
		return nil
	}
	d.rehashStepIfDue()

	var bucket *Entry
	if d.isRehashing() {
		total := d.ht[0].size() + d.ht[1].size()
		span := total - uint64(d.rehashIdx)
		r := uint64(d.rehashIdx) + d.rng.Uint64N(span)
		for bucket == nil {
			if r >= d.ht[0].size() {
				bucket = d.ht[1].buckets[r-d.ht[0].size()]
			} else {
				bucket = d.ht[0].buckets[r]
			}
			if bucket == nil {
				r++
				if r >= total {
					r = uint64(d.rehashIdx)
				}
			}
		}
	} else {
		r := d.rng.Uint64N(d.ht[0].size())
		for bucket == nil {
			bucket = d.ht[0].buckets[r]
			if bucket == nil {
				r = (r + 1) % d.ht[0].size()
			}
		}
	}

	n := 0
	for e := bucket; e != nil; e = e.next {
		n++
	}
	pick := int(d.rng.Uint64N(uint64(n)))
	e := bucket
	for i := 0; i < pick; i++ {
		e = e.next
	}
	return e
}

// fairSampleCount is the number of candidates GetFairRandomKey draws via
// GetSomeKeys before choosing uniformly among them (spec.md §4.1.3).
const fairSampleCount = 10

// GetFairRandomKey improves on GetRandomKey's chain-length bias by
// sampling fairSampleCount entries via GetSomeKeys and returning one of
// them chosen uniformly.
func (d *Dict) GetFairRandomKey() *Entry {
	keys := d.GetSomeKeys(fairSampleCount)
	if len(keys) == 0 {
		return d.GetRandomKey()
	}
	return keys[d.rng.Uint64N(uint64(len(keys)))]
}

// GetSomeKeys performs a bounded-work sample of up to count entries by
// visiting contiguous buckets starting at a random offset across
// whichever tables are active, stopping early once count*10 consecutive
// empty buckets have been skipped. It returns however many entries it
// actually produced, never more than count; per spec.md §9's open
// question, the result is a multiset — duplicates are not filtered out,
// and while rehashing a walk longer than the smaller table revisits that
// table's buckets.
func (d *Dict) GetSomeKeys(count int) []*Entry {
	if count <= 0 || d.Size() == 0 {
		return nil
	}
	if uint64(count) > d.Size() {
		count = int(d.Size())
	}

	tables := 1
	if d.isRehashing() {
		tables = 2
	}
	maxSize := d.ht[0].size()
	if tables == 2 && d.ht[1].size() > maxSize {
		maxSize = d.ht[1].size()
	}
	if maxSize == 0 {
		return nil
	}

	maxSteps := count * 10
	idx := d.rng.Uint64N(maxSize)
	out := make([]*Entry, 0, count)

	for emptySteps := 0; len(out) < count && emptySteps < maxSteps; idx++ {
		found := false
		for j := 0; j < tables; j++ {
			t := &d.ht[j]
			if t.size() == 0 {
				continue
			}
			b := t.buckets[idx&t.mask()]
			if b == nil {
				continue
			}
			found = true
			for e := b; e != nil; e = e.next {
				out = append(out, e)
				if len(out) >= count {
					return out
				}
			}
		}
		if !found {
			emptySteps++
		} else {
			emptySteps = 0
		}
	}
	return out
}
