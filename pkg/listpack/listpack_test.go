package listpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopRoundTrip(t *testing.T) {
	lp := New()
	values := []string{"alpha", "beta", "gamma", "42", "-7"}
	for _, v := range values {
		lp.PushTail(EntryFromBytes([]byte(v)))
	}
	require.Equal(t, len(values), lp.Count())

	var popped []string
	for {
		e, ok := lp.PopHead()
		if !ok {
			break
		}
		popped = append(popped, string(e.AsBytes()))
	}
	require.Equal(t, values, popped)
}

func TestEntryFromBytesDetectsIntegers(t *testing.T) {
	e := EntryFromBytes([]byte("1234"))
	require.True(t, e.IsInt)
	require.Equal(t, int64(1234), e.Int)

	e = EntryFromBytes([]byte("-1234"))
	require.True(t, e.IsInt)
	require.Equal(t, int64(-1234), e.Int)

	// Leading zero strings are not canonical integer forms.
	e = EntryFromBytes([]byte("007"))
	require.False(t, e.IsInt)
	require.Equal(t, "007", string(e.AsBytes()))
}

func TestInsertAndDeleteRange(t *testing.T) {
	lp := New()
	for _, v := range []string{"a", "b", "c", "d"} {
		lp.PushTail(EntryFromRaw([]byte(v)))
	}
	require.True(t, lp.Insert(2, EntryFromRaw([]byte("X"))))

	got, ok := lp.Get(2)
	require.True(t, ok)
	require.Equal(t, "X", string(got.AsBytes()))
	require.Equal(t, 5, lp.Count())

	require.True(t, lp.DeleteRange(1, 2))
	require.Equal(t, 3, lp.Count())
	first, _ := lp.Get(0)
	second, _ := lp.Get(1)
	require.Equal(t, "a", string(first.AsBytes()))
	require.Equal(t, "d", string(second.AsBytes()))
}

func TestSplitAndMerge(t *testing.T) {
	lp := New()
	for _, v := range []string{"a", "b", "c", "d", "e"} {
		lp.PushTail(EntryFromRaw([]byte(v)))
	}
	left, right := lp.Split(2)
	require.Equal(t, 2, left.Count())
	require.Equal(t, 3, right.Count())

	left.Merge(right)
	require.Equal(t, 5, left.Count())
	require.Equal(t, 0, right.Count())

	for i, v := range []string{"a", "b", "c", "d", "e"} {
		e, ok := left.Get(i)
		require.True(t, ok)
		require.Equal(t, v, string(e.AsBytes()))
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	lp := New()
	lp.PushTail(EntryFromBytes([]byte("hello")))
	lp.PushTail(EntryFromBytes([]byte("99")))
	lp.PushTail(EntryFromRaw([]byte("007")))

	buf := lp.Serialize()
	require.Len(t, buf, lp.Bytes())

	out := Deserialize(buf)
	require.Equal(t, lp.Count(), out.Count())
	require.Equal(t, lp.Bytes(), out.Bytes())

	for i := 0; i < lp.Count(); i++ {
		want, _ := lp.Get(i)
		got, _ := out.Get(i)
		require.Equal(t, want.IsInt, got.IsInt)
		require.Equal(t, want.AsBytes(), got.AsBytes())
	}
}

func TestEncodedLenMatchesSerializedLength(t *testing.T) {
	entries := []Entry{
		EntryFromInt(0),
		EntryFromInt(-12345),
		EntryFromRaw([]byte("a reasonably long string value")),
		EntryFromRaw(nil),
	}
	lp := New()
	total := 0
	for _, e := range entries {
		lp.PushTail(e)
		total += e.EncodedLen()
	}
	require.Equal(t, total, lp.Bytes())
	require.Len(t, lp.Serialize(), total)
}
