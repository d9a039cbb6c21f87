// Package randutil provides the PRNG collaborator spec.md §6 describes:
// a uniform 64-bit random source used by the dictionary's random
// sampling operations. Go's unsigned long is always 64-bit, so there is
// no 32-bit fallback path to reproduce.
package randutil

import "math/rand/v2"

// Source is a uniform random source. The default implementation wraps
// math/rand/v2's top-level generator; callers that need determinism
// (tests, fuzzers) can substitute their own via New.
type Source interface {
	// Uint64 returns a uniform random value over the full 64-bit range.
	Uint64() uint64
	// Uint64N returns a uniform random value in [0, n). Panics if n == 0.
	Uint64N(n uint64) uint64
}

type defaultSource struct{}

func (defaultSource) Uint64() uint64 { return rand.Uint64() }

func (defaultSource) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

// Default is the package-wide Source used when callers don't supply one.
var Default Source = defaultSource{}

// seeded wraps a *rand.Rand (rand/v2's PCG-backed Rand) for reproducible
// sampling in tests.
type seeded struct{ r *rand.Rand }

// New returns a Source seeded deterministically from seed1/seed2, for
// use in tests that need reproducible sampling sequences.
func New(seed1, seed2 uint64) Source {
	return seeded{r: rand.New(rand.NewPCG(seed1, seed2))}
}

func (s seeded) Uint64() uint64 { return s.r.Uint64() }

func (s seeded) Uint64N(n uint64) uint64 { return s.r.Uint64N(n) }
