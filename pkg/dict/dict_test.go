package dict

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coredata-kv/coredata/pkg/sipkey"
)

// stringDictType is the test dictType: string keys hashed via
// pkg/sipkey, compared with Go's built-in string equality.
func stringDictType() *Type {
	return &Type{
		HashFunction: func(key any) uint64 {
			return sipkey.GenHashFunction([]byte(key.(string)))
		},
		KeyCompare: func(_ *Dict, a, b any) bool {
			return a.(string) == b.(string)
		},
	}
}

func TestAddFindDelete(t *testing.T) {
	d := Create(stringDictType())

	require.NoError(t, d.Add("k1", Int64Value(1)))
	require.ErrorIs(t, d.Add("k1", Int64Value(2)), ErrKeyExists)

	v, ok := d.FetchValue("k1")
	require.True(t, ok)
	n, _ := v.Int64()
	require.Equal(t, int64(1), n)

	require.NoError(t, d.Delete("k1"))
	require.ErrorIs(t, d.Delete("k1"), ErrKeyNotFound)

	_, ok = d.FetchValue("k1")
	require.False(t, ok)
}

func TestReplaceIsIdempotent(t *testing.T) {
	d := Create(stringDictType())

	created := d.Replace("k", Int64Value(10))
	require.True(t, created)

	createdAgain := d.Replace("k", Int64Value(20))
	require.False(t, createdAgain)

	v, _ := d.FetchValue("k")
	n, _ := v.Int64()
	require.Equal(t, int64(20), n)

	// Property 8: replace(k,v) then replace(k,v) again is a no-op on
	// observable state.
	d.Replace("k", Int64Value(20))
	v2, _ := d.FetchValue("k")
	n2, _ := v2.Int64()
	require.Equal(t, n, n2)
}

// TestS1DictRehashUnderLoad is spec.md §8 scenario S1.
func TestS1DictRehashUnderLoad(t *testing.T) {
	d := Create(stringDictType())

	for i := 0; i < 1024; i++ {
		key := fmt.Sprintf("k%d", i)
		require.NoError(t, d.Add(key, Int64Value(int64(i))))

		probe := fmt.Sprintf("k%d", i/2)
		require.NotNil(t, d.Find(probe))
	}

	require.Equal(t, uint64(1024), d.Size())
	require.GreaterOrEqual(t, d.Slots(), uint64(1024))

	for i := 1023; i >= 0; i-- {
		require.NoError(t, d.Delete(fmt.Sprintf("k%d", i)))
	}
	require.Equal(t, uint64(0), d.Size())
}

// TestS2ScanCompletenessAcrossResize is spec.md §8 scenario S2.
func TestS2ScanCompletenessAcrossResize(t *testing.T) {
	d := Create(stringDictType())

	initial := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("init%d", i)
		initial[key] = struct{}{}
		require.NoError(t, d.Add(key, Int64Value(int64(i))))
	}

	visited := make(map[string]struct{})
	cursor := uint64(0)
	grown := false
	for {
		cursor = d.Scan(cursor, func(e *Entry) {
			visited[e.Key().(string)] = struct{}{}
		}, nil)

		if !grown {
			for i := 0; i < 500; i++ {
				require.NoError(t, d.Add(fmt.Sprintf("grow%d", i), Int64Value(int64(i))))
			}
			grown = true
		}

		if cursor == 0 {
			break
		}
	}

	for k := range initial {
		_, ok := visited[k]
		require.True(t, ok, "scan must visit every key present at scan-start: missing %s", k)
	}
}

// TestS3UnsafeIteratorFingerprint is spec.md §8 scenario S3.
func TestS3UnsafeIteratorFingerprint(t *testing.T) {
	d := Create(stringDictType())
	require.NoError(t, d.Add("a", Int64Value(1)))
	require.NoError(t, d.Add("b", Int64Value(2)))

	it := d.GetIterator()
	it.Next()

	require.NoError(t, d.Add("c", Int64Value(3)))

	require.Panics(t, func() {
		it.Release()
	})
}

func TestSafeIteratorToleratesMutation(t *testing.T) {
	d := Create(stringDictType())
	require.NoError(t, d.Add("a", Int64Value(1)))

	it := d.GetSafeIterator()
	it.Next()
	require.NoError(t, d.Add("b", Int64Value(2)))
	require.NotPanics(t, func() {
		it.Release()
	})
}

func TestGetRandomKeyOnNonEmptyDict(t *testing.T) {
	d := Create(stringDictType())
	for i := 0; i < 50; i++ {
		require.NoError(t, d.Add(fmt.Sprintf("k%d", i), Int64Value(int64(i))))
	}

	for i := 0; i < 20; i++ {
		e := d.GetRandomKey()
		require.NotNil(t, e)
	}

	keys := d.GetSomeKeys(5)
	require.NotEmpty(t, keys)
}

func TestGetRandomKeyOnEmptyDict(t *testing.T) {
	d := Create(stringDictType())
	require.Nil(t, d.GetRandomKey())
}

func TestAddOrFind(t *testing.T) {
	d := Create(stringDictType())

	e1, created := d.AddOrFind("k", Int64Value(1))
	require.True(t, created)
	n, _ := e1.Value().Int64()
	require.Equal(t, int64(1), n)

	e2, created := d.AddOrFind("k", Int64Value(2))
	require.False(t, created)
	require.Same(t, e1, e2)
	n2, _ := e2.Value().Int64()
	require.Equal(t, int64(1), n2, "AddOrFind must not overwrite an existing entry")
}
