package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("spectral manifest "), 512)
	incompressible := make([]byte, 4096)
	for i := range incompressible {
		incompressible[i] = byte(i*131 + i>>3)
	}

	for _, c := range []Compression{None, LZ4, Zstd} {
		for _, data := range [][]byte{nil, []byte("x"), compressible, incompressible} {
			framed, err := Compress(data, c)
			require.NoError(t, err, "compression %s", c)

			got, err := Decompress(framed, c)
			require.NoError(t, err, "compression %s", c)
			assert.Equal(t, append([]byte(nil), data...), append([]byte(nil), got...), "compression %s", c)
		}
	}
}

func TestCompressibleDataShrinks(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 1024)

	for _, c := range []Compression{LZ4, Zstd} {
		framed, err := Compress(data, c)
		require.NoError(t, err)
		assert.Less(t, len(framed), len(data), "compression %s", c)
	}
}

func TestTruncatedBlock(t *testing.T) {
	framed, err := Compress([]byte("some payload bytes"), Zstd)
	require.NoError(t, err)

	_, err = Decompress(framed[:4], Zstd)
	assert.Error(t, err)

	_, err = Decompress(nil, None)
	assert.Error(t, err)
}

func TestDecompressRejectsCorruptSizeField(t *testing.T) {
	// A forged uncompressed-size word must produce an error, never a
	// multi-gigabyte allocation.
	data := bytes.Repeat([]byte("manifest "), 512) // compresses, so both paths run
	for _, c := range []Compression{LZ4, Zstd} {
		framed, err := Compress(data, c)
		require.NoError(t, err, "compression %s", c)

		framed[0], framed[1], framed[2], framed[3] = 0xFF, 0xFF, 0xFF, 0xFF
		_, err = Decompress(framed, c)
		assert.Error(t, err, "compression %s", c)
	}
}

func TestCompressionNames(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "lz4", LZ4.String())
	assert.Equal(t, "zstd", Zstd.String())
	assert.True(t, Zstd.Valid())
	assert.False(t, Compression(9).Valid())
}
