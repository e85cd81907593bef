package chunktrie

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phasorlab/spectral/carrier"
	"github.com/phasorlab/spectral/rng"
)

// testBuffer returns deterministic pseudo-random bytes; duplicate chunks are
// vanishingly unlikely, which the content-addressed leaf table requires.
func testBuffer(n int) []byte {
	r := rng.New(0xB0F)
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(r.Float64() * 256)
	}
	return buf
}

func TestEncodeIndexOnly(t *testing.T) {
	buf := testBuffer(1000)

	cm, err := Encode(buf, WithChunkSize(256), WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, cm.Version)
	assert.Equal(t, Kind, cm.Kind)
	assert.Equal(t, 4, cm.ChunkCount)
	assert.Equal(t, 256, cm.ChunkSize)
	assert.Len(t, cm.Leaves, 4)
	require.NoError(t, cm.Validate())

	// Leaf sizes: three full chunks and a 232-byte tail.
	var sizes []int
	for _, leaf := range cm.Leaves {
		sizes = append(sizes, leaf.Size)
	}
	assert.ElementsMatch(t, []int{256, 256, 256, 232}, sizes)

	// Every digest resolves through the trie to its chunk index.
	for digest, leaf := range cm.Leaves {
		idx, ok := cm.Trie.Lookup(digest)
		require.True(t, ok, "digest %s", digest)
		assert.Equal(t, leaf.Index, idx)
	}
}

func TestPerChunkSeedDerivation(t *testing.T) {
	buf := testBuffer(600)

	cm, err := Encode(buf, WithChunkSize(200), WithSeed(0xCAFE))
	require.NoError(t, err)

	for digest, leaf := range cm.Leaves {
		assert.Equal(t, uint32(0xCAFE)^rng.SeedFromDigest(digest), leaf.Seed)
	}
}

func TestRoundTripWithVectors(t *testing.T) {
	buf := testBuffer(300)

	cm, err := Encode(buf,
		WithChunkSize(64),
		WithDim(1024),
		WithSeed(7),
		WithVectors(true),
	)
	require.NoError(t, err)
	require.Equal(t, 5, cm.ChunkCount)

	got, err := Decode(cm)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

func TestRoundTripFixedPlan(t *testing.T) {
	buf := testBuffer(90)

	cm, err := Encode(buf,
		WithChunkSize(20), // 28 frame bytes = 112 bins, fits merkaba125
		WithDim(2048),
		WithSeedString("harmonic"),
		WithPlan(carrier.Merkaba125),
		WithVectors(true),
	)
	require.NoError(t, err)

	got, err := Decode(cm)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

func TestDuplicateChunksCollapse(t *testing.T) {
	// Two identical chunks share one leaf; the order list keeps both
	// positions and the round-trip still holds.
	buf := bytes.Repeat([]byte{0x42}, 128)

	cm, err := Encode(buf, WithChunkSize(64), WithDim(1024), WithVectors(true))
	require.NoError(t, err)
	assert.Equal(t, 2, cm.ChunkCount)
	assert.Len(t, cm.Leaves, 1)
	assert.Len(t, cm.Order, 2)
	assert.Equal(t, cm.Order[0], cm.Order[1])
	require.NoError(t, cm.Validate())

	got, err := Decode(cm)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

func TestDuplicateChunksInterleaved(t *testing.T) {
	a := bytes.Repeat([]byte{1}, 32)
	b := bytes.Repeat([]byte{2}, 32)
	buf := append(append(append([]byte(nil), a...), b...), a...)

	cm, err := Encode(buf, WithChunkSize(32), WithDim(512), WithVectors(true))
	require.NoError(t, err)
	assert.Equal(t, 3, cm.ChunkCount)
	assert.Len(t, cm.Leaves, 2)

	// The shared leaf belongs to the first occurrence.
	leaf := cm.Leaves[cm.Order[0]]
	assert.Zero(t, leaf.Index)
	assert.Equal(t, cm.Order[0], cm.Order[2])

	got, err := Decode(cm)
	require.NoError(t, err)
	assert.Equal(t, buf, got)
}

func TestDecodeMissingVector(t *testing.T) {
	buf := testBuffer(100)

	cm, err := Encode(buf, WithChunkSize(50), WithDim(1024), WithVectors(true))
	require.NoError(t, err)

	for _, leaf := range cm.Leaves {
		leaf.Vector = nil
		leaf.VectorManifest = nil
		break
	}

	_, err = Decode(cm)
	var tde *TrieDecodeError
	require.ErrorAs(t, err, &tde)
	assert.Equal(t, "missing embedded vector", tde.Reason)
}

func TestDecodeIndexOnlyFails(t *testing.T) {
	cm, err := Encode(testBuffer(100), WithChunkSize(50))
	require.NoError(t, err)

	_, err = Decode(cm)
	var tde *TrieDecodeError
	assert.ErrorAs(t, err, &tde)
}

func TestRootFingerprintStable(t *testing.T) {
	buf := testBuffer(2048)

	// The fingerprint hashes sorted keys, so it cannot depend on worker
	// scheduling or chunk order.
	a, err := Encode(buf, WithChunkSize(128), WithParallelism(1))
	require.NoError(t, err)
	b, err := Encode(buf, WithChunkSize(128), WithParallelism(8))
	require.NoError(t, err)

	assert.Equal(t, a.Root, b.Root)
	assert.Equal(t, a.Leaves, b.Leaves)
}

func TestEncodeDeterministicWithVectors(t *testing.T) {
	buf := testBuffer(200)

	a, err := Encode(buf, WithChunkSize(32), WithDim(512), WithSeed(3), WithVectors(true), WithParallelism(4))
	require.NoError(t, err)
	b, err := Encode(buf, WithChunkSize(32), WithDim(512), WithSeed(3), WithVectors(true), WithParallelism(1))
	require.NoError(t, err)

	for digest, leafA := range a.Leaves {
		leafB, ok := b.Leaves[digest]
		require.True(t, ok)
		assert.Equal(t, leafA.Vector, leafB.Vector)
		assert.Equal(t, leafA.VectorManifest, leafB.VectorManifest)
	}
}

func TestEncodeEmptyBuffer(t *testing.T) {
	cm, err := Encode(nil)
	require.NoError(t, err)
	assert.Zero(t, cm.ChunkCount)
	require.NoError(t, cm.Validate())

	got, err := Decode(cm)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeVectorsRequireDim(t *testing.T) {
	_, err := Encode(testBuffer(10), WithVectors(true))
	assert.Error(t, err)
}

func TestEncodeCapacityPropagates(t *testing.T) {
	// 64-sample vectors cannot carry 50-byte chunks.
	_, err := Encode(testBuffer(100), WithChunkSize(50), WithDim(64), WithVectors(true))
	var ce *carrier.CapacityError
	assert.ErrorAs(t, err, &ce)
}

func TestValidateCatchesTampering(t *testing.T) {
	cm, err := Encode(testBuffer(100), WithChunkSize(50))
	require.NoError(t, err)

	cm.Root = "00" + cm.Root[2:]
	assert.Error(t, cm.Validate())
}
