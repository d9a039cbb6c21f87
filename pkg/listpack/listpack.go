// Package listpack implements the packed-element container quicklist
// nodes are built from. spec.md §1 treats the listpack as an external
// collaborator ("assumed to provide O(end) push/pop, indexed access, and
// iteration") and leaves its internal format out of scope; this package
// gives that contract a concrete, from-scratch body since no upstream
// listpack.c exists in this module.
//
// A Listpack holds its elements as a flat slice of Entry values plus a
// running byte-size total (Bytes), so quicklist's fill-policy checks
// (§4.2.1) can be answered in O(1) without re-deriving the encoded size
// of every element.
package listpack

import (
	"encoding/binary"
	"math"
)

// Entry is one element of a Listpack. Small integers are stored in Int
// with IsInt set, mirroring the real listpack's compact integer
// encodings; everything else is a byte string in Bytes.
type Entry struct {
	Bytes []byte
	Int   int64
	IsInt bool
}

// EncodedLen is the exact number of bytes Entry occupies in Serialize's
// output: a one-byte tag, then either a varint-encoded integer or a
// uvarint length prefix followed by the raw string bytes. quicklist
// tracks each node's byte size (Node.Sz) as the sum of its elements'
// EncodedLen, so that size is always exactly the length Serialize
// produces — the buffer the LZF codec actually compresses.
func (e Entry) EncodedLen() int {
	if e.IsInt {
		return 1 + varintLen(e.Int)
	}
	return 1 + uvarintLen(uint64(len(e.Bytes))) + len(e.Bytes)
}

func varintLen(v int64) int {
	var buf [binary.MaxVarintLen64]byte
	return binary.PutVarint(buf[:], v)
}

func uvarintLen(v uint64) int {
	var buf [binary.MaxVarintLen64]byte
	return binary.PutUvarint(buf[:], v)
}

// EntryFromBytes builds an Entry from a byte string, detecting whether
// it parses as a compact integer the way listpack's LP_ENCODING logic
// would. Callers that already know they want a raw string (e.g. binary
// payloads that happen to look numeric) should use EntryFromRaw instead.
func EntryFromBytes(data []byte) Entry {
	if v, ok := parseInt(data); ok {
		return Entry{Int: v, IsInt: true}
	}
	return Entry{Bytes: append([]byte(nil), data...)}
}

// EntryFromRaw always stores data as a byte string, bypassing integer
// detection.
func EntryFromRaw(data []byte) Entry {
	return Entry{Bytes: append([]byte(nil), data...)}
}

// EntryFromInt builds an integer entry directly.
func EntryFromInt(v int64) Entry {
	return Entry{Int: v, IsInt: true}
}

func parseInt(data []byte) (int64, bool) {
	if len(data) == 0 || len(data) > 20 {
		return 0, false
	}
	neg := false
	i := 0
	if data[0] == '-' {
		neg = true
		i++
	}
	if i == len(data) {
		return 0, false
	}
	var v int64
	for ; i < len(data); i++ {
		c := data[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int64(c - '0')
		if v > (math.MaxInt64-d)/10 {
			return 0, false // does not fit in an int64
		}
		v = v*10 + d
	}
	if neg {
		v = -v
	}
	// Reject values with leading zeros other than "0" itself, matching
	// listpack's refusal to re-encode ambiguous strings as integers.
	if len(data) > 1 && ((!neg && data[0] == '0') || (neg && data[1] == '0')) {
		return 0, false
	}
	return v, true
}

// AsBytes renders an Entry back to its string form, the representation
// quicklist callers (Pop, Get, iteration) deal with.
func (e Entry) AsBytes() []byte {
	if !e.IsInt {
		return e.Bytes
	}
	return []byte(itoa(e.Int))
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Listpack is a compact, indexable sequence of Entry values.
type Listpack struct {
	entries []Entry
	size    int
}

// New returns an empty listpack.
func New() *Listpack {
	return &Listpack{}
}

// Count returns the number of elements.
func (lp *Listpack) Count() int { return len(lp.entries) }

// Bytes returns the total encoded size of the listpack's elements.
func (lp *Listpack) Bytes() int { return lp.size }

// PushTail appends data at the end.
func (lp *Listpack) PushTail(e Entry) {
	lp.entries = append(lp.entries, e)
	lp.size += e.EncodedLen()
}

// PushHead prepends data at the front.
func (lp *Listpack) PushHead(e Entry) {
	lp.entries = append([]Entry{e}, lp.entries...)
	lp.size += e.EncodedLen()
}

// PopTail removes and returns the last element.
func (lp *Listpack) PopTail() (Entry, bool) {
	n := len(lp.entries)
	if n == 0 {
		return Entry{}, false
	}
	e := lp.entries[n-1]
	lp.entries = lp.entries[:n-1]
	lp.size -= e.EncodedLen()
	return e, true
}

// PopHead removes and returns the first element.
func (lp *Listpack) PopHead() (Entry, bool) {
	if len(lp.entries) == 0 {
		return Entry{}, false
	}
	e := lp.entries[0]
	lp.entries = lp.entries[1:]
	lp.size -= e.EncodedLen()
	return e, true
}

// Get returns the element at index (0-based from the head).
func (lp *Listpack) Get(index int) (Entry, bool) {
	if index < 0 || index >= len(lp.entries) {
		return Entry{}, false
	}
	return lp.entries[index], true
}

// Insert inserts e before index, shifting the tail right. index ==
// Count() appends.
func (lp *Listpack) Insert(index int, e Entry) bool {
	if index < 0 || index > len(lp.entries) {
		return false
	}
	lp.entries = append(lp.entries, Entry{})
	copy(lp.entries[index+1:], lp.entries[index:])
	lp.entries[index] = e
	lp.size += e.EncodedLen()
	return true
}

// Replace overwrites the element at index in place.
func (lp *Listpack) Replace(index int, e Entry) bool {
	old, ok := lp.Get(index)
	if !ok {
		return false
	}
	lp.entries[index] = e
	lp.size += e.EncodedLen() - old.EncodedLen()
	return true
}

// DeleteRange removes count elements starting at index.
func (lp *Listpack) DeleteRange(index, count int) bool {
	if index < 0 || count < 0 || index+count > len(lp.entries) {
		return false
	}
	for _, e := range lp.entries[index : index+count] {
		lp.size -= e.EncodedLen()
	}
	lp.entries = append(lp.entries[:index], lp.entries[index+count:]...)
	return true
}

// Iterate calls fn for every element from head to tail, stopping early
// if fn returns false.
func (lp *Listpack) Iterate(fn func(index int, e Entry) bool) {
	for i, e := range lp.entries {
		if !fn(i, e) {
			return
		}
	}
}

// Split divides the listpack at index: elements [0, index) stay in a
// left half, [index, Count()) move to a new right half. Used by
// quicklist when a node must be split to accept a middle insertion.
func (lp *Listpack) Split(index int) (left, right *Listpack) {
	if index < 0 {
		index = 0
	}
	if index > len(lp.entries) {
		index = len(lp.entries)
	}
	left = New()
	right = New()
	for _, e := range lp.entries[:index] {
		left.PushTail(e)
	}
	for _, e := range lp.entries[index:] {
		right.PushTail(e)
	}
	return left, right
}

// Merge appends other's elements to the end of lp and empties other.
func (lp *Listpack) Merge(other *Listpack) {
	lp.entries = append(lp.entries, other.entries...)
	lp.size += other.size
	other.entries = nil
	other.size = 0
}

// Compare reports whether the element at the iterator position equals
// data's encoded form, mirroring quicklistCompare.
func Compare(e Entry, data []byte) bool {
	return string(e.AsBytes()) == string(data)
}

// Clone returns a deep copy, used by quicklist.Dup.
func (lp *Listpack) Clone() *Listpack {
	out := New()
	out.entries = append([]Entry(nil), lp.entries...)
	out.size = lp.size
	return out
}

// Serialize renders the listpack's elements to a flat byte buffer of
// exactly Bytes() length — the payload quicklist hands to the LZF codec
// when a node is compressed.
func (lp *Listpack) Serialize() []byte {
	buf := make([]byte, 0, lp.size)
	var tmp [binary.MaxVarintLen64]byte
	for _, e := range lp.entries {
		if e.IsInt {
			buf = append(buf, 1)
			n := binary.PutVarint(tmp[:], e.Int)
			buf = append(buf, tmp[:n]...)
		} else {
			buf = append(buf, 0)
			n := binary.PutUvarint(tmp[:], uint64(len(e.Bytes)))
			buf = append(buf, tmp[:n]...)
			buf = append(buf, e.Bytes...)
		}
	}
	return buf
}

// Deserialize is Serialize's inverse, used to decompress an LZF node
// back into a usable Listpack.
func Deserialize(buf []byte) *Listpack {
	lp := New()
	i := 0
	for i < len(buf) {
		tag := buf[i]
		i++
		if tag == 1 {
			v, n := binary.Varint(buf[i:])
			i += n
			lp.PushTail(Entry{Int: v, IsInt: true})
		} else {
			u, n := binary.Uvarint(buf[i:])
			i += n
			data := buf[i : i+int(u)]
			i += int(u)
			lp.PushTail(EntryFromRaw(data))
		}
	}
	return lp
}
