package chunktrie

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/phasorlab/spectral/internal/hash"
	"github.com/phasorlab/spectral/manifest"
	"github.com/phasorlab/spectral/modem"
	"github.com/phasorlab/spectral/rng"
)

// CurrentVersion is the chunk-manifest schema version written by this
// library.
const CurrentVersion = 1

// Kind identifies the chunk-manifest flavor.
const Kind = "patricia-trie-chunks"

// Leaf describes one distinct chunk content. Duplicate chunks collapse onto
// a single leaf; Index is the position of the first occurrence.
type Leaf struct {
	Index          int                `json:"index"`
	Size           int                `json:"size"`
	Hash           string             `json:"hash"`
	Dim            int                `json:"dim"`
	Seed           uint32             `json:"seed"`
	Vector         []float64          `json:"vector,omitempty"`
	VectorManifest *manifest.Manifest `json:"vectorManifest,omitempty"`
}

// ChunkManifest is the content-addressed record of one chunked buffer.
//
// Leaves is keyed by digest and holds each distinct content once; Order
// records the digest at every chunk position, so repeated content stays
// reconstructible without repeated leaves.
type ChunkManifest struct {
	Version    int              `json:"version"`
	Kind       string           `json:"kind"`
	Root       string           `json:"root"`
	Dim        int              `json:"dim"`
	Seed       uint32           `json:"seed"`
	ChunkSize  int              `json:"chunkSize"`
	ChunkCount int              `json:"chunkCount"`
	Trie       *Node            `json:"trie"`
	Order      []string         `json:"order"`
	Leaves     map[string]*Leaf `json:"leaves"`
}

// Validate checks the structural invariants of cm, including the root
// fingerprint against the leaf keys and the leaf table against the chunk
// order.
func (cm *ChunkManifest) Validate() error {
	if cm.Version != CurrentVersion {
		return fmt.Errorf("unsupported chunk manifest version: %d (expected %d)", cm.Version, CurrentVersion)
	}
	if cm.Kind != Kind {
		return fmt.Errorf("unsupported chunk manifest kind: %q", cm.Kind)
	}
	if cm.ChunkCount != len(cm.Order) {
		return fmt.Errorf("chunk count %d disagrees with %d ordered chunks", cm.ChunkCount, len(cm.Order))
	}

	first := make(map[string]int, len(cm.Leaves))
	for i, digest := range cm.Order {
		if _, ok := cm.Leaves[digest]; !ok {
			return fmt.Errorf("chunk %d references unknown digest %q", i, digest)
		}
		if _, ok := first[digest]; !ok {
			first[digest] = i
		}
	}
	if len(first) != len(cm.Leaves) {
		return fmt.Errorf("%d leaves but %d distinct ordered digests", len(cm.Leaves), len(first))
	}

	keys := make([]string, 0, len(cm.Leaves))
	for k, leaf := range cm.Leaves {
		if k != leaf.Hash {
			return fmt.Errorf("leaf key %q disagrees with its hash %q", k, leaf.Hash)
		}
		if first[k] != leaf.Index {
			return fmt.Errorf("leaf %q index %d disagrees with first occurrence %d", k, leaf.Index, first[k])
		}
		keys = append(keys, k)
	}
	if got := fingerprint(keys); got != cm.Root {
		return fmt.Errorf("root fingerprint mismatch: manifest %s, computed %s", cm.Root, got)
	}
	return nil
}

// Encode splits buf into chunks, derives a content-addressed leaf per
// distinct chunk content (embedding it into a spectral vector when
// WithVectors is set), and assembles the prefix trie and root fingerprint.
// Repeated content shares one leaf; Order keeps every position addressable.
// Chunk work fans out across a bounded worker group; each worker owns its
// generator state, so the result is identical to a sequential run.
func Encode(buf []byte, opts ...Option) (*ChunkManifest, error) {
	o := applyOptions(opts)
	if o.chunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size: %d", o.chunkSize)
	}
	if o.includeVectors && o.dim <= 0 {
		return nil, &modem.ErrInvalidDimension{Dimension: o.dim}
	}

	count := (len(buf) + o.chunkSize - 1) / o.chunkSize
	leaves := make([]*Leaf, count)

	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			start := i * o.chunkSize
			end := start + o.chunkSize
			if end > len(buf) {
				end = len(buf)
			}
			data := buf[start:end]

			digest := hash.SHA256Hex(data)
			leaf := &Leaf{
				Index: i,
				Size:  len(data),
				Hash:  digest,
				Dim:   o.dim,
				Seed:  o.seed ^ rng.SeedFromDigest(digest),
			}

			if o.includeVectors {
				vec, vm, err := modem.Encode(data, modem.Config{Dim: o.dim, Seed: leaf.Seed, Plan: o.plan})
				if err != nil {
					return fmt.Errorf("chunk %d: %w", i, err)
				}
				leaf.Vector = vec
				leaf.VectorManifest = vm
			}

			leaves[i] = leaf // each worker owns exactly one slot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := make([]string, count)
	uniq := make([]string, 0, count)
	leafMap := make(map[string]*Leaf, count)
	for i, leaf := range leaves {
		order[i] = leaf.Hash
		if _, ok := leafMap[leaf.Hash]; ok {
			continue // duplicate content, first occurrence owns the leaf
		}
		leafMap[leaf.Hash] = leaf
		uniq = append(uniq, leaf.Hash)
	}

	trie := &Node{}
	for _, k := range uniq {
		trie.insert(k, leafMap[k].Index)
	}

	return &ChunkManifest{
		Version:    CurrentVersion,
		Kind:       Kind,
		Root:       fingerprint(uniq),
		Dim:        o.dim,
		Seed:       o.seed,
		ChunkSize:  o.chunkSize,
		ChunkCount: count,
		Trie:       trie,
		Order:      order,
		Leaves:     leafMap,
	}, nil
}

// Decode reconstructs the original buffer: every distinct leaf's embedded
// vector is decoded once and re-hashed against its digest, then the chunks
// are concatenated following Order. A leaf without an embedded vector fails
// the whole reconstruction.
func Decode(cm *ChunkManifest, opts ...Option) ([]byte, error) {
	o := applyOptions(opts)
	if err := cm.Validate(); err != nil {
		return nil, err
	}

	uniq := make([]*Leaf, 0, len(cm.Leaves))
	for _, leaf := range cm.Leaves {
		uniq = append(uniq, leaf)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].Index < uniq[j].Index })

	slot := make(map[string]int, len(uniq))
	for i, leaf := range uniq {
		slot[leaf.Hash] = i
	}

	chunks := make([][]byte, len(uniq))
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for i, leaf := range uniq {
		i, leaf := i, leaf
		g.Go(func() error {
			if leaf.Vector == nil || leaf.VectorManifest == nil {
				return &TrieDecodeError{Digest: leaf.Hash, Index: leaf.Index, Reason: "missing embedded vector"}
			}

			data, err := modem.Decode(leaf.Vector, leaf.VectorManifest)
			if err != nil {
				return fmt.Errorf("chunk %d: %w", leaf.Index, err)
			}
			if got := hash.SHA256Hex(data); got != leaf.Hash {
				return &TrieDecodeError{Digest: leaf.Hash, Index: leaf.Index, Reason: "content digest mismatch"}
			}

			chunks[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, digest := range cm.Order {
		total += len(chunks[slot[digest]])
	}
	out := make([]byte, 0, total)
	for _, digest := range cm.Order {
		out = append(out, chunks[slot[digest]]...)
	}
	return out, nil
}
