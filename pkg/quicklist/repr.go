package quicklist

import (
	"fmt"
	"strings"
)

// Repr renders a human-readable summary of the list's node structure:
// one line per node giving its container, encoding, count and byte
// size. When full is false, only the counts of nodes by encoding are
// reported (quicklistRepr).
func (ql *Quicklist) Repr(full bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "quicklist: count=%d len=%d fill=%d compress=%d\n", ql.count, ql.length, ql.fill, ql.compress)

	if !full {
		raw, lzf, plain := 0, 0, 0
		for n := ql.head; n != nil; n = n.next {
			switch {
			case n.IsPlain():
				plain++
			case n.encoding == EncodingLZF:
				lzf++
			default:
				raw++
			}
		}
		fmt.Fprintf(&b, "  raw=%d lzf=%d plain=%d\n", raw, lzf, plain)
		return b.String()
	}

	idx := 0
	for n := ql.head; n != nil; n, idx = n.next, idx+1 {
		container := "packed"
		if n.IsPlain() {
			container = "plain"
		}
		encoding := "raw"
		if n.encoding == EncodingLZF {
			encoding = "lzf"
		}
		fmt.Fprintf(&b, "  [%d] %s/%s count=%d sz=%d\n", idx, container, encoding, n.count, n.sz)
	}
	return b.String()
}
