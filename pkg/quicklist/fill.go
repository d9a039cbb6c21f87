package quicklist

// SizeSafetyLimit caps a single PACKED node's byte size regardless of
// fill policy when fill >= 0 (spec.md §4.2.1).
const SizeSafetyLimit = 8192

// listpackMax is the largest a listpack can grow to, independent of
// fill policy (spec.md §4.2.1, "listpack maximum").
const listpackMax = 1 << 16

// DefaultPackedThreshold is the element size above which a value is
// always stored as its own PLAIN node (spec.md §4.2.1).
const DefaultPackedThreshold = 1 << 30

// byteCaps maps a negative fill value to its per-node byte cap
// (spec.md's "byte_cap(fill)" table; fill -1..-5 correspond to Redis's
// optimization_level constants).
var byteCaps = [...]int{
	-1: 4 << 10,
	-2: 8 << 10,
	-3: 16 << 10,
	-4: 32 << 10,
	-5: 64 << 10,
}

func fillByteCap(fill int) int {
	if fill >= -5 && fill <= -1 {
		return byteCaps[-fill]
	}
	return byteCaps[2] // out-of-range negative fill clamps to -2's cap
}

// nodeLimitOK reports whether a PACKED node may grow to newCount
// elements totaling newSz bytes under the configured fill policy.
func (ql *Quicklist) nodeLimitOK(newCount, newSz int) bool {
	if newSz > listpackMax {
		return false
	}
	if ql.fill >= 0 {
		return newCount <= ql.fill && newSz <= SizeSafetyLimit
	}
	return newSz <= fillByteCap(ql.fill)
}

// isLargeElement reports whether an element's encoded size alone
// requires it to bypass packing and live in its own PLAIN node.
func isLargeElement(encodedLen int, threshold uint64) bool {
	return uint64(encodedLen) > threshold
}
