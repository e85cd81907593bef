// Package chunktrie splits buffers into content-addressed chunks, optionally
// embeds each chunk into a spectral vector, and indexes the chunk digests in
// a compressed prefix trie.
//
// Chunks are addressed by SHA-256 hex digest. Each chunk's embedding seed is
// derived from its digest, so identical content always embeds identically
// under the same manifest seed, and repeated chunks collapse onto a single
// leaf with the manifest's order list keeping every position addressable.
// The trie and the root fingerprint are pure functions of the digest set:
// processing order never changes them.
package chunktrie

import (
	"sort"
	"strings"

	"github.com/phasorlab/spectral/internal/hash"
)

// Node is a compressed prefix-trie node over hex-digest keys. Children branch
// on the first hex nibble of the remaining key; Prefix holds the shared path
// fragment swallowed by edge compression. A non-nil Index marks a terminal
// node and names the chunk.
type Node struct {
	Prefix   string           `json:"prefix,omitempty"`
	Children map[string]*Node `json:"children,omitempty"`
	Index    *int             `json:"index,omitempty"`
}

// buildTrie indexes keys in order. Insertion is iterative: digests are fixed
// length, but the loop keeps the construction depth independent of leaf
// count.
func buildTrie(keys []string) *Node {
	root := &Node{}
	for i, k := range keys {
		root.insert(k, i)
	}
	return root
}

func (root *Node) insert(key string, index int) {
	cur := root
	rest := key
	for {
		if rest == "" {
			idx := index
			cur.Index = &idx
			return
		}

		nibble := rest[:1]
		if cur.Children == nil {
			cur.Children = make(map[string]*Node)
		}
		child, ok := cur.Children[nibble]
		if !ok {
			idx := index
			cur.Children[nibble] = &Node{Prefix: rest, Index: &idx}
			return
		}

		lcp := commonPrefixLen(child.Prefix, rest)
		if lcp == len(child.Prefix) {
			cur = child
			rest = rest[lcp:]
			continue
		}

		// Split the compressed edge at the divergence point.
		mid := &Node{
			Prefix:   child.Prefix[:lcp],
			Children: map[string]*Node{child.Prefix[lcp : lcp+1]: child},
		}
		child.Prefix = child.Prefix[lcp:]
		cur.Children[nibble] = mid

		idx := index
		if lcp == len(rest) {
			mid.Index = &idx
		} else {
			mid.Children[rest[lcp:lcp+1]] = &Node{Prefix: rest[lcp:], Index: &idx}
		}
		return
	}
}

// Lookup walks the trie for key and returns the chunk index stored at its
// terminal node.
func (root *Node) Lookup(key string) (int, bool) {
	cur := root
	rest := key
	for {
		if rest == "" {
			if cur.Index == nil {
				return 0, false
			}
			return *cur.Index, true
		}
		child, ok := cur.Children[rest[:1]]
		if !ok || !strings.HasPrefix(rest, child.Prefix) {
			return 0, false
		}
		cur = child
		rest = rest[len(child.Prefix):]
	}
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// fingerprint hashes the ascending-sorted keys concatenated. Sorting first
// makes the fingerprint independent of chunk-processing order.
func fingerprint(keys []string) string {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	return hash.SHA256Hex([]byte(strings.Join(sorted, "")))
}
