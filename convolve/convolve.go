// Package convolve implements FFT-based circular convolution binding over
// real vectors.
//
// Bind superposes two equal-length vectors by multiplying their spectra;
// Unbind divides them back apart. Unbinding is approximate: wherever the
// known factor's spectrum is near zero the division is regularized with an
// epsilon, so the recovered vector matches the original only up to that
// regularization error.
package convolve

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// ErrUnequalLength is returned when the two vectors differ in length.
var ErrUnequalLength = errors.New("vectors must have equal length")

// epsilon regularizes near-zero spectral denominators during unbinding.
const epsilon = 1e-12

// Bind circularly convolves a and b: Re(IFFT(FFT(a) ⊙ FFT(b))).
func Bind(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d != %d", ErrUnequalLength, len(a), len(b))
	}
	if len(a) == 0 {
		return nil, nil
	}

	fa := fft.FFTReal(a)
	fb := fft.FFTReal(b)
	prod := make([]complex128, len(fa))
	for i := range fa {
		prod[i] = fa[i] * fb[i]
	}

	return realPart(fft.IFFT(prod)), nil
}

// Unbind approximately inverts Bind given one factor: the bound spectrum is
// divided element-wise by the known factor's spectrum.
func Unbind(bound, known []float64) ([]float64, error) {
	if len(bound) != len(known) {
		return nil, fmt.Errorf("%w: %d != %d", ErrUnequalLength, len(bound), len(known))
	}
	if len(bound) == 0 {
		return nil, nil
	}

	fb := fft.FFTReal(bound)
	fk := fft.FFTReal(known)
	quot := make([]complex128, len(fb))
	for i := range fb {
		d := fk[i]
		if cmplx.Abs(d) < epsilon {
			d += complex(epsilon, 0)
		}
		quot[i] = fb[i] / d
	}

	return realPart(fft.IFFT(quot)), nil
}

func realPart(v []complex128) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		out[i] = real(c)
	}
	return out
}
