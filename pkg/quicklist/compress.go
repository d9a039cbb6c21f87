package quicklist

import (
	"github.com/pkg/errors"

	"github.com/coredata-kv/coredata/pkg/dictstat"
	"github.com/coredata-kv/coredata/pkg/listpack"
	"github.com/coredata-kv/coredata/pkg/lzf"
)

// ensureDecompressed makes n's listpack available for reading or
// mutation, decompressing it if it currently carries an LZF payload.
// Per spec.md §4.2.2 step 1, this sets recompress so the node is owed
// a re-settle against compression policy once the caller releases it.
func (ql *Quicklist) ensureDecompressed(n *Node) {
	if n == nil || n.encoding != EncodingLZF {
		return
	}
	raw, err := lzf.Decompress(n.compressed, n.sz)
	if err != nil {
		panic(errors.Wrap(err, "quicklist: lzf decompress"))
	}
	n.lp = listpack.Deserialize(raw)
	n.compressed = nil
	n.encoding = EncodingRaw
	n.recompress = true
}

// compressNode attempts to replace a PACKED node's listpack with its
// LZF-compressed form. PLAIN nodes are never compressed, and a node
// already LZF is left as it is. A node smaller than
// lzf.MinCompressBytes, or whose compressed form does not shrink, stays
// RAW and is marked attemptedCompress (spec.md §4.2.2).
func (ql *Quicklist) compressNode(n *Node) {
	if n == nil || n.container != ContainerPacked || n.lp == nil {
		return
	}
	raw := n.lp.Serialize()
	n.attemptedCompress = true

	if len(raw) < lzf.MinCompressBytes {
		dictstat.QuicklistCompressAttempts.WithLabelValues("too_small").Inc()
		return
	}

	compressed, ok := lzf.Compress(raw)
	if !ok {
		dictstat.QuicklistCompressAttempts.WithLabelValues("no_gain").Inc()
		return
	}

	dictstat.QuicklistCompressAttempts.WithLabelValues("compressed").Inc()
	n.compressed = compressed
	n.sz = len(raw)
	n.lp = nil
	n.encoding = EncodingLZF
	n.recompress = false
}

// enforceCompressionPolicy walks the whole list and settles every node
// to RAW or LZF per the configured compress depth: the first and last
// `compress` nodes stay RAW, all interior nodes are compressed
// (spec.md §4.2.2, Invariant/Property 6). Settling the full list on
// every structural change is simpler than tracking per-node
// distance-from-end incrementally and is cheap relative to the
// mutation it follows; correctness, not micro-performance, is the
// goal of this port.
func (ql *Quicklist) enforceCompressionPolicy() {
	if ql.compress <= 0 {
		for n := ql.head; n != nil; n = n.next {
			ql.ensureDecompressed(n)
			n.recompress = false
		}
		return
	}

	depth := ql.compress
	length := int(ql.length)
	idx := 0
	for n := ql.head; n != nil; n, idx = n.next, idx+1 {
		tailDist := length - 1 - idx
		if idx < depth || tailDist < depth {
			ql.ensureDecompressed(n)
			n.recompress = false
		} else {
			ql.compressNode(n)
		}
	}
}

// settleOne re-checks a single node against compression policy, used
// when an iterator leaves a node it had to decompress to serve Next
// (spec.md §4.2.2 step 3, "for each node whose distance-from-end
// changed"). Only nodes still owed a re-settle (recompress set) are
// touched; nodes within the always-RAW window never trigger here
// because enforceCompressionPolicy already cleared their flag.
func (ql *Quicklist) settleOne(n *Node) {
	if n == nil || ql.compress <= 0 || !n.recompress {
		return
	}
	idx := ql.nodeIndexFromHead(n)
	if idx < 0 {
		return
	}
	tailDist := int(ql.length) - 1 - idx
	if idx >= ql.compress && tailDist >= ql.compress {
		ql.compressNode(n)
	}
	n.recompress = false
}

func (ql *Quicklist) nodeIndexFromHead(target *Node) int {
	idx := 0
	for n := ql.head; n != nil; n = n.next {
		if n == target {
			return idx
		}
		idx++
	}
	return -1
}
