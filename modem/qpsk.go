// Package modem maps byte payloads and trit sequences onto carrier-bin
// phases and back.
//
// QPSK frames carry an 8-byte length+CRC header; the ternary 3-PSK codec is
// frameless and leaves integrity to the caller. Both write into a fresh
// unitary spectrum so that untouched bins keep their deterministic baseline
// phases, which is what lets the decoder tell carrier bins from background.
//
// Carrier bins sit at unit magnitude and QPSK symbols are 90 degrees apart,
// so a spectral perturbation below sin(45 deg) of the carrier magnitude
// cannot flip a symbol. A single time-domain sample changed by delta shifts
// every bin by at most |delta|: sample corruption under roughly 0.7 is
// absorbed silently, while anything past the margin scrambles symbols and
// trips the CRC.
package modem

import (
	"fmt"
	"math"

	"github.com/phasorlab/spectral/carrier"
	"github.com/phasorlab/spectral/internal/hash"
	"github.com/phasorlab/spectral/manifest"
	"github.com/phasorlab/spectral/spectrum"
	"github.com/phasorlab/spectral/transform"
)

// Config identifies one carrier configuration: enough, together with a
// payload, to reproduce an encode, and enough, together with a vector, to
// decode one.
type Config struct {
	Dim  int
	Seed uint32
	Plan carrier.Plan
}

// Encode embeds payload into a fresh n-sample vector and returns it with the
// manifest describing the embedding.
func Encode(payload []byte, cfg Config) ([]float64, *manifest.Manifest, error) {
	if cfg.Dim <= 0 {
		return nil, nil, &ErrInvalidDimension{Dimension: cfg.Dim}
	}

	frame := appendFrame(nil, payload)
	binsNeeded := len(frame) * 8 / 2

	bins, err := planBins(cfg, binsNeeded)
	if err != nil {
		return nil, nil, err
	}

	spec := spectrum.Unitary(cfg.Dim, cfg.Seed)
	modulateBits(spec, bins, frame)

	m := &manifest.Manifest{
		Version:       manifest.CurrentVersion,
		Dim:           cfg.Dim,
		Seed:          cfg.Seed,
		Modulation:    manifest.ModulationQPSK,
		BitsPerSymbol: 2,
		Bins:          bins,
		Plan:          cfg.Plan,
		PayloadBytes:  len(payload),
		CRC32:         hash.CRC32(payload),
	}
	return transform.InverseReal(spec), m, nil
}

// Decode recovers the payload from a vector using its manifest. The
// manifest's bin sequence is authoritative for symbol order.
func Decode(vector []float64, m *manifest.Manifest) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Modulation != manifest.ModulationQPSK {
		return nil, fmt.Errorf("manifest modulation %q is not %q", m.Modulation, manifest.ModulationQPSK)
	}
	if len(vector) != m.Dim {
		return nil, &ErrDimensionMismatch{Expected: m.Dim, Actual: len(vector)}
	}

	bins := m.Bins
	if len(bins) == 0 {
		var err error
		bins, err = planBins(Config{Dim: m.Dim, Seed: m.Seed, Plan: m.Plan}, (HeaderSize+m.PayloadBytes)*4)
		if err != nil {
			return nil, err
		}
	}

	frame := demodulateBits(transform.ForwardReal(vector), bins)
	hdr, err := parseHeader(frame)
	if err != nil {
		return nil, err
	}
	if int(hdr.PayloadLen) != m.PayloadBytes {
		return nil, &LengthMismatchError{Declared: int(hdr.PayloadLen), Actual: m.PayloadBytes}
	}

	payload, err := verifyFrame(frame, hdr)
	if err != nil {
		return nil, err
	}
	if crc := hash.CRC32(payload); crc != m.CRC32 {
		return nil, &IntegrityError{Expected: m.CRC32, Computed: crc}
	}
	return payload, nil
}

// DecodeConfig recovers the payload from a vector without a manifest, given
// the carrier configuration it was encoded under.
//
// For fixed plans the full bin sequence is known up front: the header is
// demodulated from the first 32 bins, revealing the payload length, and the
// rest of the frame follows. The auto plan sorts its bins, so its header bins
// shift with the total count; the count is recovered instead by a bounded
// ascending search in which the embedded length and checksum confirm the
// match. Both procedures are deterministic.
func DecodeConfig(vector []float64, cfg Config) ([]byte, error) {
	if cfg.Dim <= 0 {
		return nil, &ErrInvalidDimension{Dimension: cfg.Dim}
	}
	if len(vector) != cfg.Dim {
		return nil, &ErrDimensionMismatch{Expected: cfg.Dim, Actual: len(vector)}
	}

	spec := transform.ForwardReal(vector)
	if cfg.Plan == carrier.Auto {
		return decodeAuto(spec, cfg)
	}

	full, err := carrier.Select(cfg.Dim, cfg.Seed, cfg.Plan, 0)
	if err != nil {
		return nil, err
	}
	if len(full) < headerBins {
		return nil, &carrier.CapacityError{Needed: headerBins, Available: len(full)}
	}

	hdr, err := parseHeader(demodulateBits(spec, full[:headerBins]))
	if err != nil {
		return nil, err
	}
	totalBins := (HeaderSize + int(hdr.PayloadLen)) * 4
	if totalBins > len(full) {
		return nil, &carrier.CapacityError{Needed: totalBins, Available: len(full)}
	}

	return verifyFrame(demodulateBits(spec, full[:totalBins]), hdr)
}

// DecodeDetect recovers the payload when even the plan is unknown, trying the
// fixed candidate order carrier.DetectOrder and accepting the first plan
// whose checksum matches. The search is sequential; its order is part of the
// decode contract.
func DecodeDetect(vector []float64, dim int, seed uint32) ([]byte, carrier.Plan, error) {
	for _, plan := range carrier.DetectOrder {
		payload, err := DecodeConfig(vector, Config{Dim: dim, Seed: seed, Plan: plan})
		if err == nil {
			return payload, plan, nil
		}
	}
	return nil, "", ErrUndecodable
}

func decodeAuto(spec []complex128, cfg Config) ([]byte, error) {
	avail := carrier.CandidateCount(cfg.Dim)
	for count := headerBins; count <= avail; count += 4 {
		bins, err := carrier.Select(cfg.Dim, cfg.Seed, carrier.Auto, count)
		if err != nil {
			return nil, err
		}

		frame := demodulateBits(spec, bins)
		hdr, err := parseHeader(frame)
		if err != nil {
			continue
		}
		if int(hdr.PayloadLen) != count/4-HeaderSize {
			continue
		}
		if payload, err := verifyFrame(frame, hdr); err == nil {
			return payload, nil
		}
	}
	return nil, ErrUndecodable
}

// planBins resolves the realized bin sequence for an encode needing
// binsNeeded carriers. Fixed plans are truncated to the need; the auto plan
// selects exactly the need.
func planBins(cfg Config, binsNeeded int) ([]int, error) {
	if cfg.Plan == carrier.Auto {
		return carrier.Select(cfg.Dim, cfg.Seed, carrier.Auto, binsNeeded)
	}

	full, err := carrier.Select(cfg.Dim, cfg.Seed, cfg.Plan, 0)
	if err != nil {
		return nil, err
	}
	if binsNeeded > len(full) {
		return nil, &carrier.CapacityError{Needed: binsNeeded, Available: len(full)}
	}
	return full[:binsNeeded], nil
}

// verifyFrame slices the declared payload out of frame and checks it against
// the header checksum.
func verifyFrame(frame []byte, hdr FrameHeader) ([]byte, error) {
	if HeaderSize+int(hdr.PayloadLen) > len(frame) {
		return nil, &LengthMismatchError{Declared: int(hdr.PayloadLen), Actual: len(frame) - HeaderSize}
	}
	payload := frame[HeaderSize : HeaderSize+int(hdr.PayloadLen)]
	if crc := hash.CRC32(payload); crc != hdr.CRC32 {
		return nil, &IntegrityError{Expected: hdr.CRC32, Computed: crc}
	}
	return payload, nil
}

// modulateBits writes data 2 bits per symbol, MSB-first per byte, onto the
// carrier bins, mirroring each phase into the conjugate bin.
func modulateBits(spec []complex128, bins []int, data []byte) {
	n := len(spec)
	bitIdx := 0
	for _, bin := range bins {
		sym := 0
		for b := 0; b < 2; b++ {
			bit := 0
			if byteIdx := bitIdx / 8; byteIdx < len(data) {
				bit = int(data[byteIdx]>>(7-bitIdx%8)) & 1
			}
			sym = sym<<1 | bit
			bitIdx++
		}

		sin, cos := math.Sincos(float64(sym) * math.Pi / 2)
		spec[bin] = complex(cos, sin)
		spec[n-bin] = complex(cos, -sin)
	}
}

// demodulateBits reads one QPSK symbol per carrier bin and packs the bits
// MSB-first into bytes. Trailing bits that do not fill a byte are dropped.
func demodulateBits(spec []complex128, bins []int) []byte {
	out := make([]byte, len(bins)*2/8)
	bitIdx := 0
	for _, bin := range bins {
		theta := math.Atan2(imag(spec[bin]), real(spec[bin]))
		theta = math.Mod(theta, 2*math.Pi)
		if theta < 0 {
			theta += 2 * math.Pi
		}
		sym := int(math.Round(theta/(math.Pi/2))) % 4

		for b := 1; b >= 0; b-- {
			if byteIdx := bitIdx / 8; byteIdx < len(out) {
				out[byteIdx] |= byte((sym>>b)&1) << (7 - bitIdx%8)
			}
			bitIdx++
		}
	}
	return out
}
