// Package dict implements an incrementally-rehashing open hash
// dictionary with pluggable key/value behavior, random sampling, and a
// cursor-stable scan — spec.md §4.1. It is a from-scratch Go
// reimplementation grounded on the original dict.c/dict.h (see
// _examples/original_source/src/dict.h) and on
// other_examples/zyhnesmr-godis's two-table Go port of the same
// structure.
package dict

import (
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/coredata-kv/coredata/pkg/dictstat"
	"github.com/coredata-kv/coredata/pkg/randutil"
	"github.com/coredata-kv/coredata/pkg/util/log"
)

// InitialExp is the exponent of a table's initial capacity
// (DICT_HT_INITIAL_EXP); initial capacity is 1<<InitialExp = 4.
const InitialExp = 2

// InitialSize is the initial number of buckets a table holds once
// allocated.
const InitialSize = uint64(1) << InitialExp

// Entry is one key/value slot, chained with other entries that hash to
// the same bucket.
type Entry struct {
	key   any
	value Value
	next  *Entry
	meta  []byte
}

// Key returns the entry's key.
func (e *Entry) Key() any { return e.key }

// Value returns the entry's value.
func (e *Entry) Value() Value { return e.value }

// Metadata returns the entry's caller-owned trailing metadata region,
// zero-initialized at allocation time (spec.md §3, "trailing,
// pointer-aligned metadata region").
func (e *Entry) Metadata() []byte { return e.meta }

// table is one of a Dict's two hash tables.
type table struct {
	buckets []*Entry
	used    uint64
	sizeExp int8 // -1 means unallocated (size 0)
	version uint64
}

func (t *table) size() uint64 {
	if t.sizeExp < 0 {
		return 0
	}
	return uint64(1) << uint(t.sizeExp)
}

func (t *table) mask() uint64 {
	s := t.size()
	if s == 0 {
		return 0
	}
	return s - 1
}

func newEmptyTable() table {
	return table{sizeExp: -1}
}

func newTable(exp int8) table {
	return table{
		buckets: make([]*Entry, uint64(1)<<uint(exp)),
		sizeExp: exp,
	}
}

// ResizePolicy governs whether automatic resize is attempted, promoted
// from the original's process-wide dict_can_resize/dict_force_resize_ratio
// statics (spec.md §5, §9 "Global state") into an explicit value passed
// at construction.
type ResizePolicy struct {
	// CanResize gates automatic growth on load crossing 1.0. The forced
	// threshold below always applies regardless of this flag.
	CanResize bool
	// ForceResizeRatio: resize is forced once used/size exceeds this,
	// even when CanResize is false. Defaults to 5.
	ForceResizeRatio float64
}

// DefaultResizePolicy matches the original's default statics.
func DefaultResizePolicy() ResizePolicy {
	return ResizePolicy{CanResize: true, ForceResizeRatio: 5}
}

// Dict is the incrementally-rehashing hash dictionary.
type Dict struct {
	typ *Type

	ht        [2]table
	rehashIdx int64 // -1 when not rehashing

	pauseRehash int16

	policy ResizePolicy
	rng    randutil.Source
	logger interface {
		Log(keyvals ...interface{}) error
	}
}

// Option configures a Dict at construction.
type Option func(*Dict)

// WithResizePolicy overrides the default resize policy.
func WithResizePolicy(p ResizePolicy) Option {
	return func(d *Dict) { d.policy = p }
}

// WithRandSource overrides the PRNG used for random sampling, mainly for
// deterministic tests.
func WithRandSource(src randutil.Source) Option {
	return func(d *Dict) { d.rng = src }
}

// Create allocates a Dict with both tables empty and rehashIdx == -1
// (spec.md §4.1 Invariant I1), matching dictCreate.
func Create(typ *Type, opts ...Option) *Dict {
	if typ == nil || typ.HashFunction == nil {
		panic("dict: Type.HashFunction is required")
	}
	d := &Dict{
		typ:       typ,
		rehashIdx: -1,
		policy:    DefaultResizePolicy(),
		rng:       randutil.Default,
		logger:    log.Logger,
	}
	d.ht[0] = newEmptyTable()
	d.ht[1] = newEmptyTable()
	return d
}

func (d *Dict) isRehashing() bool { return d.rehashIdx != -1 }

// IsRehashing reports whether the dictionary currently has an
// in-progress incremental rehash (Invariant I1).
func (d *Dict) IsRehashing() bool { return d.isRehashing() }

// Size returns used[0]+used[1], the number of distinct keys currently
// stored.
func (d *Dict) Size() uint64 { return d.ht[0].used + d.ht[1].used }

// Slots returns the total bucket capacity across both tables.
func (d *Dict) Slots() uint64 { return d.ht[0].size() + d.ht[1].size() }

// bucketIndex computes the bucket index for key's hash within table t.
func bucketIndex(h uint64, t *table) uint64 { return h & t.mask() }

// HashOf exposes the configured hash function over key (dictGetHash).
func (d *Dict) HashOf(key any) uint64 { return d.typ.HashFunction(key) }

// PauseRehashing increments the rehash-pause counter; while positive, no
// bucket migration is performed by any operation (Invariant I4).
func (d *Dict) PauseRehashing() { d.pauseRehash++ }

// ResumeRehashing decrements the rehash-pause counter.
func (d *Dict) ResumeRehashing() {
	d.pauseRehash--
	if d.pauseRehash < 0 {
		panic("dict: ResumeRehashing called without matching PauseRehashing")
	}
}

func (d *Dict) rehashStepIfDue() {
	if d.pauseRehash == 0 && d.isRehashing() {
		d.rehash(1)
	}
}

// --- expand / resize -------------------------------------------------

func nextPow2Exp(n uint64) int8 {
	if n < 1 {
		n = 1
	}
	exp := int8(InitialExp)
	for (uint64(1) << uint(exp)) < n {
		exp++
	}
	return exp
}

// Expand grows the dictionary unconditionally to hold at least n
// entries at load <= 1. It is the "abort on failure" variant: in this
// Go port there is no simulated allocator failure, so Expand never
// returns an error; a real out-of-memory condition surfaces as a Go
// runtime panic from the underlying make(), consistent with the
// original's abort-on-OOM semantics (spec.md §7).
func (d *Dict) Expand(n uint64) {
	if err := d.expand(n, true); err != nil {
		panic(errors.Wrap(err, "dict: Expand"))
	}
}

// TryExpand is Expand's policy-respecting variant: if type.ExpandAllowed
// is configured and denies the growth, it returns ErrOutOfPolicy without
// mutating d.
func (d *Dict) TryExpand(n uint64) error {
	return d.expand(n, false)
}

func (d *Dict) expand(n uint64, unconditional bool) error {
	if d.isRehashing() {
		return nil // already rehashing; a second expand is a no-op
	}

	targetExp := nextPow2Exp(n)
	targetSize := uint64(1) << uint(targetExp)
	if targetSize < n {
		return errors.New("dict: requested size overflows")
	}

	if !unconditional && d.typ.ExpandAllowed != nil {
		moreMem := targetSize * uint64(entryFootprintEstimate)
		used := d.ht[0].used
		usedRatio := 0.0
		if d.ht[0].size() > 0 {
			usedRatio = float64(used) / float64(d.ht[0].size())
		}
		if !d.typ.ExpandAllowed(moreMem, usedRatio) {
			level.Warn(d.logger).Log("msg", "expand denied by policy", "more_mem", moreMem, "used_ratio", usedRatio)
			return ErrOutOfPolicy
		}
	}

	if d.ht[0].size() == 0 {
		d.ht[0] = newTable(targetExp)
		d.ht[0].version++
		return nil
	}

	// Target no smaller than what's already used, mirroring dictExpand's
	// own precondition check.
	if targetSize < d.ht[0].used {
		return errors.New("dict: target size smaller than used entries")
	}

	d.ht[1] = newTable(targetExp)
	d.rehashIdx = 0
	direction := "grow"
	if targetSize <= d.ht[0].size() {
		direction = "shrink"
	}
	dictstat.Resizes.WithLabelValues(direction).Inc()
	level.Debug(d.logger).Log("msg", "rehash started", "from_size", d.ht[0].size(), "to_size", targetSize)
	return nil
}

// entryFootprintEstimate is a rough per-slot byte cost used only to
// produce a plausible moreMem estimate for ExpandAllowed; the real
// number depends on the caller's key/value sizes, which this module
// does not know.
const entryFootprintEstimate = 48

// Resize shrinks the dictionary to the smallest power-of-two capacity
// that holds max(used, InitialSize), provided resizing is enabled and
// not paused.
func (d *Dict) Resize() error {
	if !d.policy.CanResize || d.pauseRehash > 0 || d.isRehashing() {
		return nil
	}
	target := d.ht[0].used
	if target < InitialSize {
		target = InitialSize
	}
	return d.expand(target, true)
}

func (d *Dict) expandIfNeeded() {
	if d.isRehashing() {
		return
	}
	if d.ht[0].size() == 0 {
		d.Expand(InitialSize)
		return
	}
	overLoad := d.ht[0].used >= d.ht[0].size()
	forced := float64(d.ht[0].used)/float64(d.ht[0].size()) > d.policy.ForceResizeRatio
	if (overLoad && d.policy.CanResize) || forced {
		d.Expand(d.ht[0].used + 1)
	}
}

// --- rehashing ---------------------------------------------------------

// rehash migrates up to n non-empty buckets from ht[0] into ht[1],
// skipping at most 10*n empty buckets before giving up for this call
// (spec.md §4.1.2).
func (d *Dict) rehash(n int) bool {
	emptyVisits := n * 10
	for ; n > 0 && d.ht[0].used != 0; n-- {
		for d.ht[0].buckets[d.rehashIdx] == nil {
			d.rehashIdx++
			if uint64(d.rehashIdx) >= d.ht[0].size() {
				d.rehashIdx = 0
			}
			emptyVisits--
			if emptyVisits == 0 {
				return true
			}
		}

		e := d.ht[0].buckets[d.rehashIdx]
		for e != nil {
			next := e.next
			idx := bucketIndex(d.typ.HashFunction(e.key), &d.ht[1])
			e.next = d.ht[1].buckets[idx]
			d.ht[1].buckets[idx] = e
			d.ht[0].used--
			d.ht[1].used++
			e = next
		}
		d.ht[0].buckets[d.rehashIdx] = nil
		d.rehashIdx++
		dictstat.RehashSteps.Inc()
	}

	if d.ht[0].used == 0 {
		d.ht[0] = d.ht[1]
		d.ht[0].version++
		d.ht[1] = newEmptyTable()
		d.ht[1].version++
		d.rehashIdx = -1
		return false
	}
	return true
}

// Rehash migrates up to n non-empty buckets and reports whether more
// rehashing work remains (dictRehash).
func (d *Dict) Rehash(n int) bool {
	if !d.isRehashing() {
		return false
	}
	return d.rehash(n)
}

// RehashMilliseconds repeatedly rehashes in batches of 100 buckets until
// ms elapses or the rehash completes, matching dictRehashMilliseconds'
// self-capping poll loop.
func (d *Dict) RehashMilliseconds(ms int64, now func() int64) int {
	if !d.isRehashing() {
		return 0
	}
	start := now()
	rehashes := 0
	for d.Rehash(100) {
		rehashes += 100
		if now()-start > ms {
			break
		}
	}
	return rehashes
}

// EnableResize / DisableResize toggle automatic resize on load crossing,
// mirroring the original's global switches but scoped to this Dict via
// its ResizePolicy (spec.md §9 "Global state").
func (d *Dict) EnableResize()  { d.policy.CanResize = true }
func (d *Dict) DisableResize() { d.policy.CanResize = false }
