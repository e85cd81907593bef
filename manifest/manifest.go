// Package manifest defines the immutable record describing one encode.
//
// A manifest is produced once, alongside the vector, and is sufficient —
// alone, or together with (dim, seed, plan) — to decode that vector. It
// stores the resolved numeric seed, never the text it may have been derived
// from, and caches the realized carrier-bin sequence so the decoder does not
// have to rerun plan selection.
package manifest

import (
	"fmt"

	"github.com/phasorlab/spectral/carrier"
	"github.com/phasorlab/spectral/codec"
)

// CurrentVersion is the manifest schema version written by this library.
const CurrentVersion = 1

// Modulation kinds recorded in a manifest.
const (
	ModulationQPSK = "qpsk"
	Modulation3PSK = "3psk"
)

// Manifest records exactly how a vector was produced.
type Manifest struct {
	Version       int          `json:"version"`
	Dim           int          `json:"dim"`
	Seed          uint32       `json:"seed"`
	Modulation    string       `json:"modulation"`
	BitsPerSymbol int          `json:"bitsPerSymbol"`
	Bins          []int        `json:"bins"`
	Plan          carrier.Plan `json:"plan"`
	PayloadBytes  int          `json:"payloadBytes"`
	CRC32         uint32       `json:"crc32"`
}

// Validate checks the structural invariants of m. It does not verify the
// payload checksum; that happens during decode.
func (m *Manifest) Validate() error {
	if m.Version != CurrentVersion {
		return fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, CurrentVersion)
	}
	if m.Dim <= 0 {
		return fmt.Errorf("invalid manifest dimension: %d", m.Dim)
	}
	if m.Modulation != ModulationQPSK && m.Modulation != Modulation3PSK {
		return fmt.Errorf("unknown modulation kind: %q", m.Modulation)
	}
	if !carrier.Valid(m.Plan) {
		return &carrier.UnknownPlanError{Name: string(m.Plan)}
	}
	for _, b := range m.Bins {
		if b < 1 || b >= m.Dim {
			return fmt.Errorf("carrier bin %d out of range for dim %d", b, m.Dim)
		}
	}
	return nil
}

// Encode serializes m with c. A nil codec falls back to codec.Default.
func Encode(c codec.Codec, m *Manifest) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(m)
}

// Decode deserializes and validates a manifest. A nil codec falls back to
// codec.Default.
func Decode(c codec.Codec, data []byte) (*Manifest, error) {
	if c == nil {
		c = codec.Default
	}
	var m Manifest
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
