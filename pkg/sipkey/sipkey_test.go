package sipkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashIsDeterministicForAGivenSeed(t *testing.T) {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	SetHashFunctionSeed(seed)

	a := GenHashFunction([]byte("hello"))
	b := GenHashFunction([]byte("hello"))
	require.Equal(t, a, b)

	c := GenHashFunction([]byte("goodbye"))
	require.NotEqual(t, a, c)
}

func TestHashChangesWithSeed(t *testing.T) {
	seed1 := make([]byte, SeedSize)
	seed2 := make([]byte, SeedSize)
	for i := range seed2 {
		seed2[i] = byte(i + 1)
	}

	SetHashFunctionSeed(seed1)
	a := GenHashFunction([]byte("hello"))

	SetHashFunctionSeed(seed2)
	b := GenHashFunction([]byte("hello"))

	require.NotEqual(t, a, b)
}

func TestCaseHashFunctionFoldsASCII(t *testing.T) {
	SetHashFunctionSeed(make([]byte, SeedSize))
	require.Equal(t, GenCaseHashFunction([]byte("Hello")), GenCaseHashFunction([]byte("hello")))
}

func TestSetHashFunctionSeedPanicsOnShortSeed(t *testing.T) {
	require.Panics(t, func() {
		SetHashFunctionSeed([]byte("too-short"))
	})
}

func TestGetHashFunctionSeedRoundTrips(t *testing.T) {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = byte(255 - i)
	}
	SetHashFunctionSeed(seed)
	require.True(t, Equal(seed, GetHashFunctionSeed()))
}
