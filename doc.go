// Package spectral embeds byte payloads into deterministic real-valued
// spectral vectors and recovers them.
//
// A payload is framed (length + CRC32), modulated as QPSK phases onto a
// pseudo-random selection of frequency bins, and synthesized into a
// unit-norm time-domain vector. Everything is seeded: the same payload,
// dimension and seed always produce the same vector, bit for bit, on any
// platform.
//
// # Quick Start
//
//	enc, err := spectral.Encode([]byte("hello"),
//	    spectral.WithDim(1024),
//	    spectral.WithSeedString("harmonic"),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	payload, err := spectral.Decode(enc.Vector, enc.Manifest)
//
// The manifest is a convenience, not a requirement. A receiver that knows
// the carrier configuration can decode without one:
//
//	payload, err := spectral.DecodeWithConfig(vector, 1024, seed, carrier.Auto)
//
// and a receiver that knows only dimension and seed can let the decoder
// search the fixed plan order:
//
//	payload, plan, err := spectral.DecodeDetect(vector, 1024, seed)
//
// # Carrier Plans
//
// Carrier bins are chosen by a plan (package carrier):
//
//   - Auto: exactly as many bins as the payload needs, ordered ascending
//   - Pentad7 / Pentad7Plus1: 7 groups of 7 (49 bins), optionally led by
//     a spectral anchor bin (50)
//   - Merkaba125 / Merkaba125Plus3: 5x5x5 structure (125 bins), optionally
//     led by three anchors (128)
//
// Fixed plans trade capacity for a stable, recognizable bin layout.
//
// # Ternary Channel
//
// EncodeTrits and DecodeTrits carry balanced-ternary symbols (-1, 0, +1)
// one per bin at 3-PSK phases. The trit channel is frameless: the trit
// count travels in the manifest (or out of band), and integrity is the
// caller's concern.
//
// # Chunked Buffers
//
// Package chunktrie splits large buffers into content-addressed chunks,
// embeds each chunk into its own vector, and indexes the chunk digests in
// a compressed prefix trie with an order-independent root fingerprint.
// Chunk manifests serialize through package codec with optional block
// compression.
//
// # Holographic Binding
//
// Package convolve binds two equal-length vectors by circular convolution
// and approximately unbinds them by spectral division, which composes with
// the codec: a bound pair can be unbound and then decoded.
//
// # Integration Points
//
// The library stops at vectors and manifests. Publishing vectors to a
// shared ledger or registry, transporting them between peers, and any CLI
// surface are left to the caller; WriteManifest/ReadManifest in chunktrie
// and the codec registry are the intended seams for those layers.
package spectral
