package chunktrie

import (
	"runtime"

	"github.com/phasorlab/spectral/carrier"
	"github.com/phasorlab/spectral/codec"
	"github.com/phasorlab/spectral/internal/block"
	"github.com/phasorlab/spectral/rng"
)

// DefaultChunkSize is the chunk granularity when none is configured.
const DefaultChunkSize = 8192

type options struct {
	chunkSize      int
	dim            int
	seed           uint32
	plan           carrier.Plan
	includeVectors bool
	parallelism    int
	codec          codec.Codec
	compression    block.Compression
}

// Option configures chunk encoding, decoding and manifest serialization.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		chunkSize:   DefaultChunkSize,
		plan:        carrier.Auto,
		parallelism: runtime.GOMAXPROCS(0),
		codec:       codec.Default,
		compression: block.Zstd,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithChunkSize sets the chunk granularity in bytes. The final chunk may be
// shorter.
func WithChunkSize(size int) Option {
	return func(o *options) { o.chunkSize = size }
}

// WithDim sets the vector dimension used for per-chunk embeddings. Required
// when vectors are included: the dimension bounds carrier capacity, so it
// must be large enough for chunkSize plus framing.
func WithDim(dim int) Option {
	return func(o *options) { o.dim = dim }
}

// WithSeed sets the manifest seed. Per-chunk seeds are derived from it by
// XORing in a digest-derived seed per chunk.
func WithSeed(seed uint32) Option {
	return func(o *options) { o.seed = seed }
}

// WithSeedString sets the manifest seed from text via the canonical FNV-1a
// derivation.
func WithSeedString(text string) Option {
	return func(o *options) { o.seed = rng.SeedFromString(text) }
}

// WithPlan sets the carrier plan used for per-chunk embeddings.
func WithPlan(plan carrier.Plan) Option {
	return func(o *options) { o.plan = plan }
}

// WithVectors controls whether each chunk is embedded into a spectral vector.
// Without vectors the manifest is an index only and cannot reconstruct the
// buffer.
func WithVectors(include bool) Option {
	return func(o *options) { o.includeVectors = include }
}

// WithParallelism bounds how many chunks are encoded or decoded
// concurrently. Values below 1 fall back to GOMAXPROCS.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.parallelism = n
	}
}

// WithCodec sets the codec used to serialize chunk manifests. Nil falls back
// to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression sets the block compression for serialized manifests.
func WithCompression(c block.Compression) Option {
	return func(o *options) { o.compression = c }
}
