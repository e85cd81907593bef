// Package transform implements the direct DFT pair used by the codec path.
//
// The O(N^2) direct forms are deliberate: encode output must be reproducible
// bit-for-bit across implementations, and the vector sizes in play (hundreds
// to a few thousand samples) keep the quadratic cost acceptable. Circular
// convolution, which does need large transforms, lives in package convolve on
// top of an FFT pair instead.
package transform

import "math"

// normEpsilon guards the L2 normalization against all-zero vectors.
const normEpsilon = 1e-12

// InverseReal computes the real part of the inverse DFT of spectrum, divides
// by N, and L2-normalizes the result. A vector whose norm falls below the
// epsilon is returned unnormalized.
//
// Phase relationships between bins survive the normalization scalar, which is
// what the demodulators rely on.
func InverseReal(spectrum []complex128) []float64 {
	n := len(spectrum)
	out := make([]float64, n)

	for i := 0; i < n; i++ {
		var acc float64
		for k := 0; k < n; k++ {
			sin, cos := math.Sincos(2 * math.Pi * float64(k) * float64(i) / float64(n))
			acc += real(spectrum[k])*cos - imag(spectrum[k])*sin
		}
		out[i] = acc / float64(n)
	}

	var sumSq float64
	for _, v := range out {
		sumSq += v * v
	}
	if norm := math.Sqrt(sumSq); norm > normEpsilon {
		for i := range out {
			out[i] /= norm
		}
	}

	return out
}

// ForwardReal computes the forward DFT of a real vector. The decoder reads
// carrier phases straight off its output.
func ForwardReal(vector []float64) []complex128 {
	n := len(vector)
	out := make([]complex128, n)

	for k := 0; k < n; k++ {
		var re, im float64
		for i := 0; i < n; i++ {
			sin, cos := math.Sincos(2 * math.Pi * float64(k) * float64(i) / float64(n))
			re += vector[i] * cos
			im -= vector[i] * sin
		}
		out[k] = complex(re, im)
	}

	return out
}
