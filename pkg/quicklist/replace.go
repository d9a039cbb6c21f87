package quicklist

import "github.com/coredata-kv/coredata/pkg/listpack"

// ReplaceEntry overwrites the element at entry's position in place
// (quicklistReplaceEntry).
func (ql *Quicklist) ReplaceEntry(it *Iterator, entry *Entry, data []byte) {
	n := entry.Node
	if n.IsPlain() {
		n.plain = append([]byte(nil), data...)
		n.sz = len(n.plain)
		return
	}
	ql.ensureDecompressed(n)
	n.lp.Replace(entry.Offset, listpack.EntryFromBytes(data))
	n.sz = n.lp.Bytes()
	ql.enforceCompressionPolicy()
}

// ReplaceAtIndex is ReplaceEntry for a plain index instead of an
// already-located Entry (quicklistReplaceAtIndex).
func (ql *Quicklist) ReplaceAtIndex(index int64, data []byte) bool {
	entry, ok := ql.EntryAtIndex(index)
	if !ok {
		return false
	}
	ql.ReplaceEntry(nil, entry, data)
	return true
}
