// Package rng implements the deterministic pseudo-random generator and the
// seed-derivation schemes the codec is built on.
//
// The generator is Mulberry32, a 32-bit counter-based PRNG. Its float output
// drives carrier-spectrum phases and carrier-plan shuffles, so it must be
// reproduced bit-exactly by any interoperating implementation. Every RNG owns
// its own state; instances must not be shared across concurrent callers.
package rng

// RNG is a Mulberry32 generator. The zero value is a generator seeded with 0;
// use New to seed explicitly.
type RNG struct {
	state uint32
}

// New returns a generator seeded with seed. Identical seeds yield identical
// output streams.
func New(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Float64 advances the generator and returns the next value in [0, 1).
//
// All intermediate arithmetic is unsigned 32-bit with wraparound; the final
// division by 2^32 maps the 32-bit word onto the unit interval.
func (r *RNG) Float64() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	x := (t ^ (t >> 15)) * (t | 1)
	x ^= x + (x^(x>>7))*(x|61)
	return float64(x^(x>>14)) / (1 << 32)
}

// Uint32n returns a uniform value in [0, n) for n > 0, consuming exactly one
// generator step. Shuffles use it so that index selection stays tied to the
// documented float stream.
func (r *RNG) Uint32n(n int) int {
	return int(r.Float64() * float64(n))
}
