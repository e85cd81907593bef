package convolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phasorlab/spectral/rng"
)

func randomVector(r *rng.RNG, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = r.Float64()*2 - 1
	}
	return v
}

func TestBindUnbindRoundTrip(t *testing.T) {
	r := rng.New(4711)

	for _, n := range []int{8, 64, 256, 1024} {
		a := randomVector(r, n)
		b := randomVector(r, n)

		bound, err := Bind(a, b)
		require.NoError(t, err)
		require.Len(t, bound, n)

		got, err := Unbind(bound, b)
		require.NoError(t, err)

		// Random dense vectors rarely have near-zero spectral bins, so the
		// approximate inverse is tight here.
		for i := range a {
			assert.InDelta(t, a[i], got[i], 1e-6, "n=%d index %d", n, i)
		}
	}
}

func TestBindKnownImpulse(t *testing.T) {
	// Convolving with a unit impulse is the identity.
	a := []float64{1, 2, 3, 4}
	impulse := []float64{1, 0, 0, 0}

	bound, err := Bind(a, impulse)
	require.NoError(t, err)
	for i := range a {
		assert.InDelta(t, a[i], bound[i], 1e-9)
	}
}

func TestBindShiftedImpulse(t *testing.T) {
	// A shifted impulse rotates the vector circularly.
	a := []float64{1, 2, 3, 4}
	shift := []float64{0, 1, 0, 0}

	bound, err := Bind(a, shift)
	require.NoError(t, err)

	want := []float64{4, 1, 2, 3}
	for i := range want {
		assert.InDelta(t, want[i], bound[i], 1e-9)
	}
}

func TestBindCommutative(t *testing.T) {
	r := rng.New(99)
	a := randomVector(r, 128)
	b := randomVector(r, 128)

	ab, err := Bind(a, b)
	require.NoError(t, err)
	ba, err := Bind(b, a)
	require.NoError(t, err)

	for i := range ab {
		assert.InDelta(t, ab[i], ba[i], 1e-9)
	}
}

func TestUnbindDegenerateFactor(t *testing.T) {
	// A factor with a zero spectrum bin exercises the epsilon path without
	// blowing up.
	a := []float64{0.5, -0.25, 0.75, 1}
	zeroish := []float64{1, -1, 1, -1} // spectrum concentrated in one bin

	bound, err := Bind(a, zeroish)
	require.NoError(t, err)

	got, err := Unbind(bound, zeroish)
	require.NoError(t, err)
	require.Len(t, got, len(a))
	for _, v := range got {
		assert.False(t, isNaNOrInf(v), "got %v", got)
	}
}

func isNaNOrInf(f float64) bool {
	return f != f || f > 1e300 || f < -1e300
}

func TestLengthMismatch(t *testing.T) {
	_, err := Bind(make([]float64, 4), make([]float64, 5))
	assert.ErrorIs(t, err, ErrUnequalLength)

	_, err = Unbind(make([]float64, 4), make([]float64, 5))
	assert.ErrorIs(t, err, ErrUnequalLength)
}
