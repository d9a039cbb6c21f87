// Package sipkey provides the hash-function-seed collaborator described
// in spec.md §6: a process-wide seed of at least 16 bytes, and two
// exported hash helpers that mix it into a fast 64-bit hash of arbitrary
// bytes. It stands in for the original's SipHash-family
// dictGenHashFunction/dictGenCaseHashFunction, backed by xxhash (the
// teacher's own choice of fast hash for arbitrary byte keys, see
// grafana/tempo's pkg/util.HashForTraceID).
package sipkey

import (
	"bytes"
	"crypto/rand"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// SeedSize is the minimum seed length spec.md §6 requires.
const SeedSize = 16

var (
	mu   sync.RWMutex
	seed = defaultSeed()
)

func defaultSeed() []byte {
	b := make([]byte, SeedSize)
	_, _ = rand.Read(b)
	return b
}

// SetHashFunctionSeed installs a new global seed. Panics if seed is
// shorter than SeedSize, matching the original's documented precondition.
func SetHashFunctionSeed(s []byte) {
	if len(s) < SeedSize {
		panic("sipkey: seed shorter than SeedSize")
	}
	mu.Lock()
	defer mu.Unlock()
	seed = append([]byte(nil), s...)
}

// GetHashFunctionSeed returns a copy of the current global seed.
func GetHashFunctionSeed() []byte {
	mu.RLock()
	defer mu.RUnlock()
	return append([]byte(nil), seed...)
}

// GenHashFunction hashes buf, mixed with the current seed, into a 64-bit
// value. Case-sensitive.
func GenHashFunction(buf []byte) uint64 {
	return mix(buf, false)
}

// GenCaseHashFunction is GenHashFunction's case-insensitive (ASCII)
// counterpart, used by dictType implementations over case-folded keys.
func GenCaseHashFunction(buf []byte) uint64 {
	return mix(buf, true)
}

func mix(buf []byte, fold bool) uint64 {
	mu.RLock()
	s := seed
	mu.RUnlock()

	var h xxhash.Digest
	h.Reset()
	_, _ = h.Write(s)
	if fold {
		folded := make([]byte, len(buf))
		for i, c := range buf {
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			folded[i] = c
		}
		_, _ = h.Write(folded)
	} else {
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Equal reports whether two seeds are identical; used by tests that
// round-trip Set/GetHashFunctionSeed.
func Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}
