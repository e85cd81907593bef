package spectral

import (
	"time"

	"github.com/phasorlab/spectral/carrier"
	"github.com/phasorlab/spectral/manifest"
	"github.com/phasorlab/spectral/modem"
)

// Encoding pairs an encoded vector with the manifest describing how the
// payload was embedded into it. The vector is unit-norm and real-valued;
// the manifest is everything a receiver needs to decode without guessing.
type Encoding struct {
	Vector   []float64
	Manifest *manifest.Manifest
}

// Encode embeds payload into a fresh spectral vector. WithDim is required;
// seed and plan default to zero and carrier.Auto.
func Encode(payload []byte, optFns ...Option) (*Encoding, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	vector, m, err := modem.Encode(payload, opts.config())
	err = translateError(err)
	opts.metrics.RecordEncode(time.Since(start), err)
	opts.logger.LogEncode(opts.dim, opts.plan, len(payload), err)
	if err != nil {
		return nil, err
	}
	return &Encoding{Vector: vector, Manifest: m}, nil
}

// Decode recovers the payload from a vector using its manifest.
func Decode(vector []float64, m *manifest.Manifest, optFns ...Option) ([]byte, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	if m == nil {
		opts.metrics.RecordDecode(time.Since(start), ErrMissingManifest)
		return nil, ErrMissingManifest
	}

	payload, err := modem.Decode(vector, m)
	err = translateError(err)
	opts.metrics.RecordDecode(time.Since(start), err)
	opts.logger.LogDecode(m.Dim, m.Plan, len(payload), err)
	return payload, err
}

// DecodeWithConfig recovers the payload without a manifest, given the
// carrier configuration the vector was encoded under.
func DecodeWithConfig(vector []float64, dim int, seed uint32, plan carrier.Plan, optFns ...Option) ([]byte, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	payload, err := modem.DecodeConfig(vector, modem.Config{Dim: dim, Seed: seed, Plan: plan})
	err = translateError(err)
	opts.metrics.RecordDecode(time.Since(start), err)
	opts.logger.LogDecode(dim, plan, len(payload), err)
	return payload, err
}

// DecodeDetect recovers the payload when only dimension and seed are known,
// trying each plan in carrier.DetectOrder and returning the first that
// yields a valid checksum along with the plan that matched.
func DecodeDetect(vector []float64, dim int, seed uint32, optFns ...Option) ([]byte, carrier.Plan, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	payload, plan, err := modem.DecodeDetect(vector, dim, seed)
	err = translateError(err)
	opts.metrics.RecordDetect(time.Since(start), err)
	opts.logger.LogDetect(dim, plan, err)
	return payload, plan, err
}

// EncodeTrits embeds a balanced-ternary sequence, one trit per carrier bin.
// The channel is frameless: the manifest records the trit count, and
// integrity is the caller's concern.
func EncodeTrits(trits []int8, optFns ...Option) (*Encoding, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	vector, m, err := modem.EncodeTrits(trits, opts.config())
	err = translateError(err)
	opts.metrics.RecordEncode(time.Since(start), err)
	opts.logger.LogEncode(opts.dim, opts.plan, len(trits), err)
	if err != nil {
		return nil, err
	}
	return &Encoding{Vector: vector, Manifest: m}, nil
}

// DecodeTrits reads a ternary sequence back using its manifest.
func DecodeTrits(vector []float64, m *manifest.Manifest, optFns ...Option) ([]int8, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	if m == nil {
		opts.metrics.RecordDecode(time.Since(start), ErrMissingManifest)
		return nil, ErrMissingManifest
	}

	trits, err := modem.DecodeTrits(vector, m)
	err = translateError(err)
	opts.metrics.RecordDecode(time.Since(start), err)
	opts.logger.LogDecode(m.Dim, m.Plan, len(trits), err)
	return trits, err
}

// DecodeTritsWithConfig reads count trits from a vector without a manifest,
// given the carrier configuration it was encoded under.
func DecodeTritsWithConfig(vector []float64, dim int, seed uint32, plan carrier.Plan, count int, optFns ...Option) ([]int8, error) {
	start := time.Now()
	opts := applyOptions(optFns)

	trits, err := modem.DecodeTritsConfig(vector, modem.Config{Dim: dim, Seed: seed, Plan: plan}, count)
	err = translateError(err)
	opts.metrics.RecordDecode(time.Since(start), err)
	opts.logger.LogDecode(dim, plan, len(trits), err)
	return trits, err
}
