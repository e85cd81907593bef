package modem

import (
	"fmt"
	"math"

	"github.com/phasorlab/spectral/manifest"
	"github.com/phasorlab/spectral/spectrum"
	"github.com/phasorlab/spectral/transform"
)

// tritPhase is the phase step between adjacent ternary symbols: trit t maps
// to phase t * 2*pi/3.
const tritPhase = 2 * math.Pi / 3

// EncodeTrits embeds a balanced-ternary sequence, one trit per carrier bin,
// with no framing: the decoder must know the trit count. The returned
// manifest records modulation "3psk" and the trit count in PayloadBytes; its
// CRC32 is zero since the frameless path carries no checksum.
func EncodeTrits(trits []int8, cfg Config) ([]float64, *manifest.Manifest, error) {
	if cfg.Dim <= 0 {
		return nil, nil, &ErrInvalidDimension{Dimension: cfg.Dim}
	}
	for i, tr := range trits {
		if tr < -1 || tr > 1 {
			return nil, nil, &InvalidTritError{Index: i, Value: tr}
		}
	}

	bins, err := planBins(cfg, len(trits))
	if err != nil {
		return nil, nil, err
	}

	spec := spectrum.Unitary(cfg.Dim, cfg.Seed)
	n := len(spec)
	for i, tr := range trits {
		sin, cos := math.Sincos(float64(tr) * tritPhase)
		spec[bins[i]] = complex(cos, sin)
		spec[n-bins[i]] = complex(cos, -sin)
	}

	m := &manifest.Manifest{
		Version:       manifest.CurrentVersion,
		Dim:           cfg.Dim,
		Seed:          cfg.Seed,
		Modulation:    manifest.Modulation3PSK,
		BitsPerSymbol: 1,
		Bins:          bins,
		Plan:          cfg.Plan,
		PayloadBytes:  len(trits),
	}
	return transform.InverseReal(spec), m, nil
}

// DecodeTrits reads the trit sequence back using its manifest.
func DecodeTrits(vector []float64, m *manifest.Manifest) ([]int8, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Modulation != manifest.Modulation3PSK {
		return nil, fmt.Errorf("manifest modulation %q is not %q", m.Modulation, manifest.Modulation3PSK)
	}
	if len(vector) != m.Dim {
		return nil, &ErrDimensionMismatch{Expected: m.Dim, Actual: len(vector)}
	}

	bins := m.Bins
	if len(bins) == 0 {
		var err error
		bins, err = planBins(Config{Dim: m.Dim, Seed: m.Seed, Plan: m.Plan}, m.PayloadBytes)
		if err != nil {
			return nil, err
		}
	}
	if len(bins) != m.PayloadBytes {
		return nil, &LengthMismatchError{Declared: m.PayloadBytes, Actual: len(bins)}
	}

	return demodulateTrits(transform.ForwardReal(vector), bins), nil
}

// DecodeTritsConfig reads count trits from a vector given its carrier
// configuration.
func DecodeTritsConfig(vector []float64, cfg Config, count int) ([]int8, error) {
	if cfg.Dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: cfg.Dim}
	}
	if len(vector) != cfg.Dim {
		return nil, &ErrDimensionMismatch{Expected: cfg.Dim, Actual: len(vector)}
	}

	bins, err := planBins(cfg, count)
	if err != nil {
		return nil, err
	}
	return demodulateTrits(transform.ForwardReal(vector), bins), nil
}

// demodulateTrits maps each carrier phase, normalized into (-pi, pi], to the
// nearest of the three reference phases.
func demodulateTrits(spec []complex128, bins []int) []int8 {
	out := make([]int8, len(bins))
	for i, bin := range bins {
		theta := math.Atan2(imag(spec[bin]), real(spec[bin]))

		best, bestDist := int8(0), math.Abs(theta)
		for _, tr := range []int8{-1, 1} {
			if d := math.Abs(theta - float64(tr)*tritPhase); d < bestDist {
				best, bestDist = tr, d
			}
		}
		out[i] = best
	}
	return out
}
