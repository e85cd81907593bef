package modem

import (
	"encoding/binary"

	"github.com/phasorlab/spectral/internal/hash"
)

// HeaderSize is the fixed size of the frame header prefixed to every QPSK
// payload: a big-endian payload length followed by a big-endian CRC32 of the
// payload.
const HeaderSize = 8

// headerBins is how many carrier bins the header occupies at 2 bits/symbol.
const headerBins = HeaderSize * 8 / 2

// FrameHeader is the length+checksum prefix of a QPSK frame.
type FrameHeader struct {
	PayloadLen uint32
	CRC32      uint32
}

// appendFrame appends the 8-byte header followed by payload to dst.
func appendFrame(dst, payload []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(payload)))
	dst = binary.BigEndian.AppendUint32(dst, hash.CRC32(payload))
	return append(dst, payload...)
}

// parseHeader reads the frame header from the start of frame.
func parseHeader(frame []byte) (FrameHeader, error) {
	if len(frame) < HeaderSize {
		return FrameHeader{}, &LengthMismatchError{Declared: HeaderSize, Actual: len(frame)}
	}
	return FrameHeader{
		PayloadLen: binary.BigEndian.Uint32(frame[0:4]),
		CRC32:      binary.BigEndian.Uint32(frame[4:8]),
	}, nil
}
