package chunktrie

import "fmt"

// TrieDecodeError indicates that a chunk needed for buffer reconstruction
// cannot be decoded: its leaf is missing, lacks an embedded vector, or its
// decoded content disagrees with its digest.
type TrieDecodeError struct {
	Digest string
	Index  int
	Reason string
}

func (e *TrieDecodeError) Error() string {
	digest := e.Digest
	if len(digest) > 12 {
		digest = digest[:12] + "…"
	}
	return fmt.Sprintf("chunk %d (%s): %s", e.Index, digest, e.Reason)
}
