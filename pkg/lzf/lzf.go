// Package lzf is the LZF codec collaborator spec.md §6 calls for: a fast,
// stateless byte-buffer compressor/decompressor with no external
// dictionary. Marc Lehmann's LZF algorithm has no maintained Go package
// in this module's retrieval pack; the closest-fit real dependency the
// pack offers for the same role — a fast block compressor with no
// external state — is LZ4's block API, which this package wraps.
package lzf

import "github.com/pierrec/lz4/v4"

// MinCompressBytes is the minimum node size worth attempting to
// compress, per spec.md §4.2.2 (MIN_COMPRESS_BYTES).
const MinCompressBytes = 48

// Compress attempts to compress src. It returns ok == false when src is
// smaller than MinCompressBytes or when compression would not shrink the
// buffer (either LZ4 reports incompressible data, or the compressed form
// isn't smaller than src) — in both cases the caller should keep the
// node raw, matching the original's "attempted but rejected" path.
func Compress(src []byte) (dst []byte, ok bool) {
	if len(src) < MinCompressBytes {
		return nil, false
	}

	buf := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, buf)
	if err != nil || n == 0 || n >= len(src) {
		return nil, false
	}
	return buf[:n], true
}

// Decompress expands src, whose uncompressed length is known ahead of
// time to be uncompressedSize (quicklist nodes record this in
// Node.Sz).
func Decompress(src []byte, uncompressedSize int) ([]byte, error) {
	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
