package quicklist

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(ql *Quicklist) []string {
	var out []string
	it := ql.GetIterator(FromHead)
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, string(e.Value))
	}
	return out
}

func TestCreateDefaults(t *testing.T) {
	ql := Create()
	require.Equal(t, uint64(0), ql.Count())
	require.Equal(t, uint64(0), ql.Len())
}

// TestRoundTrip is spec.md §8 property 7.
func TestRoundTrip(t *testing.T) {
	ql := Create()
	var pushed []string
	for i := 0; i < 200; i++ {
		v := fmt.Sprintf("value-%d", i)
		pushed = append(pushed, v)
		ql.PushTail([]byte(v))
	}

	var popped []string
	for {
		v, ok := ql.Pop(Head)
		if !ok {
			break
		}
		popped = append(popped, string(v))
	}

	require.Equal(t, pushed, popped)
	require.Equal(t, uint64(0), ql.Count())
	require.Equal(t, uint64(0), ql.Len())
}

// TestS4FillBoundary is spec.md §8 scenario S4.
func TestS4FillBoundary(t *testing.T) {
	ql := New(128, 0)

	for i := 0; i < 1000; i++ {
		ql.PushTail([]byte(fmt.Sprintf("%010d", i)))
	}

	require.Equal(t, uint64(1000), ql.Count())
	require.LessOrEqual(t, ql.Len(), uint64(8))

	for n := ql.head; n != nil; n = n.next {
		require.LessOrEqual(t, n.count, 128)
	}

	var popped []string
	for {
		v, ok := ql.Pop(Head)
		if !ok {
			break
		}
		popped = append(popped, string(v))
	}
	for i, v := range popped {
		require.Equal(t, fmt.Sprintf("%010d", i), v)
	}
	require.Equal(t, uint64(0), ql.Len())
	require.Equal(t, uint64(0), ql.Count())
}

// TestS5Compression is spec.md §8 scenario S5.
func TestS5Compression(t *testing.T) {
	ql := New(-2, 1)

	payload := make([]byte, 1024)
	for i := range payload {
		payload[i] = byte(i % 251) // avoid a perfectly uniform, oddly-compressible buffer
	}

	for i := 0; i < 100; i++ {
		buf := append([]byte(nil), payload...)
		buf[0] = byte(i)
		ql.PushTail(buf)
	}

	require.GreaterOrEqual(t, int(ql.Len()), 13)
	require.Equal(t, EncodingRaw, ql.head.encoding)
	require.Equal(t, EncodingRaw, ql.tail.encoding)

	interior := 0
	for n := ql.head.next; n != nil && n != ql.tail; n = n.next {
		interior++
		if n.encoding == EncodingRaw {
			require.True(t, n.attemptedCompress, "interior RAW node must have been attempted")
		}
	}
	require.Greater(t, interior, 0)

	entry, ok := ql.EntryAtIndex(50)
	require.True(t, ok)
	require.Len(t, entry.Value, 1024)
}

// TestS6RangeDelete is spec.md §8 scenario S6.
func TestS6RangeDelete(t *testing.T) {
	ql := Create()
	for i := 0; i < 100; i++ {
		ql.PushTail([]byte(strconv.Itoa(i)))
	}

	removed := ql.DelRange(10, 30)
	require.True(t, removed)
	require.Equal(t, uint64(70), ql.Count())

	entry, ok := ql.EntryAtIndex(10)
	require.True(t, ok)
	require.Equal(t, "40", string(entry.Value))
}

func TestPropertyCountEqualsSumOfNodeCounts(t *testing.T) {
	ql := New(16, 0)
	for i := 0; i < 500; i++ {
		ql.PushTail([]byte(fmt.Sprintf("item-%d", i)))
	}

	sum := 0
	nodes := uint64(0)
	for n := ql.head; n != nil; n = n.next {
		sum += n.count
		nodes++
	}
	require.Equal(t, int(ql.Count()), sum)
	require.Equal(t, ql.Len(), nodes)
}

func TestInsertBeforeAfter(t *testing.T) {
	ql := Create()
	ql.PushTail([]byte("a"))
	ql.PushTail([]byte("c"))

	entry, ok := ql.EntryAtIndex(1)
	require.True(t, ok)
	ql.InsertBefore(nil, entry, []byte("b"))

	require.Equal(t, []string{"a", "b", "c"}, collect(ql))

	entry, ok = ql.EntryAtIndex(2)
	require.True(t, ok)
	ql.InsertAfter(nil, entry, []byte("d"))
	require.Equal(t, []string{"a", "b", "c", "d"}, collect(ql))
}

func TestReplaceAtIndex(t *testing.T) {
	ql := Create()
	for _, v := range []string{"a", "b", "c"} {
		ql.PushTail([]byte(v))
	}
	require.True(t, ql.ReplaceAtIndex(1, []byte("B")))
	require.Equal(t, []string{"a", "B", "c"}, collect(ql))
	require.False(t, ql.ReplaceAtIndex(10, []byte("x")))
}

func TestDelEntryAdvancesToSuccessor(t *testing.T) {
	ql := Create()
	for _, v := range []string{"a", "b", "c"} {
		ql.PushTail([]byte(v))
	}

	it := ql.GetIterator(FromHead)
	_, _ = it.Next() // a
	entry, _ := it.Next()
	require.Equal(t, "b", string(entry.Value))

	ql.DelEntry(it, entry)

	next, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "c", string(next.Value))
	require.Equal(t, uint64(2), ql.Count())
}

func TestRotate(t *testing.T) {
	ql := Create()
	for _, v := range []string{"a", "b", "c"} {
		ql.PushTail([]byte(v))
	}
	ql.Rotate()
	require.Equal(t, []string{"c", "a", "b"}, collect(ql))
}

func TestPlainNodeForLargeElement(t *testing.T) {
	ql := Create()
	ql.SetPackedThreshold(16)

	ql.PushTail([]byte("short"))
	ql.PushTail(make([]byte, 64))

	require.False(t, ql.head.IsPlain())
	require.True(t, ql.tail.IsPlain())
}

func TestBookmarks(t *testing.T) {
	ql := New(1, 0) // one element per node, so "a" and "b" sit in separate nodes
	ql.PushTail([]byte("a"))
	ql.PushTail([]byte("b"))

	require.True(t, ql.BookmarkCreate("mark", ql.tail))
	require.Equal(t, ql.tail, ql.BookmarkFind("mark"))

	ql.DelRange(1, 1) // removes the bookmarked (last) node
	require.Nil(t, ql.BookmarkFind("mark"), "bookmark on the last node must be dropped once there's no successor")
}

func TestDupIsIndependentCopy(t *testing.T) {
	ql := Create()
	for _, v := range []string{"a", "b", "c"} {
		ql.PushTail([]byte(v))
	}

	dup := ql.Dup()
	require.Equal(t, collect(ql), collect(dup))

	ql.PushTail([]byte("d"))
	require.NotEqual(t, collect(ql), collect(dup))
}
