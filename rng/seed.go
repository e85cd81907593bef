package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"hash/fnv"
)

// SeedFromString derives a 32-bit seed from text using FNV-1a over its UTF-8
// bytes. This is the canonical derivation for user-supplied text seeds on the
// public encode/decode path.
//
// Manifests always store the resolved numeric seed, never the text it came
// from.
func SeedFromString(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()
}

// SeedFromDigest derives a 32-bit seed from text by XOR-folding the four
// big-endian 32-bit words at offsets 0, 4, 8 and 12 of its SHA-256 digest.
//
// The chunk layer uses it exclusively: a chunk's seed is the manifest seed
// XORed with SeedFromDigest of the chunk's hex digest. It intentionally
// differs from SeedFromString; the two derivations are never mixed on one
// call path.
func SeedFromDigest(text string) uint32 {
	sum := sha256.Sum256([]byte(text))
	return binary.BigEndian.Uint32(sum[0:4]) ^
		binary.BigEndian.Uint32(sum[4:8]) ^
		binary.BigEndian.Uint32(sum[8:12]) ^
		binary.BigEndian.Uint32(sum[12:16])
}
