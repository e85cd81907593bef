// Package spectrum generates the baseline carrier spectra the modulators
// write into.
//
// A unitary spectrum is conjugate-symmetric with every populated bin at
// magnitude 1, which guarantees a real inverse transform. Bin phases come from
// a seeded generator, so the spectrum is a pure function of (n, seed): the
// decoder can rebuild the exact baseline the encoder started from.
package spectrum

import (
	"math"

	"github.com/phasorlab/spectral/rng"
)

// Unitary returns the conjugate-symmetric unit-magnitude spectrum of length n
// for the given seed. n must be positive.
//
// Bin 0 (DC) is fixed at 1+0i, as is the Nyquist bin for even n. For each
// k in [1, n/2) a phase theta = 2*pi*rng() is drawn and spectrum[k] = e^{i
// theta}, with the conjugate mirrored into spectrum[n-k].
func Unitary(n int, seed uint32) []complex128 {
	s := make([]complex128, n)
	s[0] = complex(1, 0)
	if n%2 == 0 && n > 1 {
		s[n/2] = complex(1, 0)
	}

	r := rng.New(seed)
	for k := 1; k < (n+1)/2; k++ {
		theta := 2 * math.Pi * r.Float64()
		sin, cos := math.Sincos(theta)
		s[k] = complex(cos, sin)
		s[n-k] = complex(cos, -sin)
	}

	return s
}
