package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/crc32"
)

// CRC32 computes the reflected CRC-32/IEEE checksum of data (polynomial
// 0xEDB88320, register initialized and finalized with all-ones). This is the
// checksum carried in every frame header and manifest.
//
// Reference vector: CRC32([]byte("hello")) == 0x3610A686.
func CRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// SHA256Hex returns the lowercase hex SHA-256 digest of data. Chunk content
// addressing and trie fingerprints are built on it.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
