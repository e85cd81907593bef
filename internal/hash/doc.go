// Package hash provides the checksum and digest primitives shared across the
// codec.
//
// # CRC-32/IEEE
//
// Frame headers and manifests use the reflected CRC-32/IEEE checksum
// (polynomial 0xEDB88320). The variant is part of the wire contract: an
// independent implementation must produce bit-identical checksums, so it is
// pinned here rather than left to callers.
//
// # SHA-256
//
// Chunk content addressing uses SHA-256 hex digests. The same digests key the
// prefix trie and feed the root fingerprint, so the encoding (lowercase hex)
// is also part of the contract.
package hash
