package lzf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)

	dst, ok := Compress(src)
	require.True(t, ok)
	require.Less(t, len(dst), len(src))

	out, err := Decompress(dst, len(src))
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestCompressRejectsSmallBuffers(t *testing.T) {
	_, ok := Compress([]byte("short"))
	require.False(t, ok)
}

