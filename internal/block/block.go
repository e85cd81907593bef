// Package block implements length-prefixed block compression for serialized
// chunk manifests.
//
// Format: [UncompressedSize uint32][CompressedSize uint32][Data...], little
// endian. A CompressedSize of 0 marks a stored (uncompressed) block, which is
// also the fallback whenever compression fails to pay for itself.
package block

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression algorithm.
type Compression uint8

const (
	// None stores blocks verbatim.
	None Compression = 0
	// LZ4 favors speed over ratio.
	LZ4 Compression = 1
	// Zstd favors ratio; still fast enough for manifest-sized payloads.
	Zstd Compression = 2
)

// String returns the stable name used in serialized headers and options.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Valid reports whether c is a known algorithm.
func (c Compression) Valid() bool {
	return c == None || c == LZ4 || c == Zstd
}

const headerSize = 8

// maxSizeHint caps the allocation taken from the uncompressed-size header
// word before the codec has validated anything; decoding grows past it only
// as real decoded bytes arrive.
const maxSizeHint = 1 << 20

// Zstd encoder/decoder pools: EncodeAll/DecodeAll are cheap once the
// worker state exists, and manifests are compressed one block at a time.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Compress frames data as a single block, compressing it with c. Blocks that
// compress to more than 90% of their input are stored verbatim.
func Compress(data []byte, c Compression) ([]byte, error) {
	var compressed []byte

	switch c {
	case None:
		// fall through to stored block
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n] // n == 0 means incompressible
	case Zstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, errors.New("unknown block compression")
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, headerSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(out[4:], 0)
		copy(out[headerSize:], data)
		return out, nil
	}

	out := make([]byte, headerSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[headerSize:], compressed)
	return out, nil
}

// Decompress unframes a block produced by Compress.
func Decompress(data []byte, c Compression) ([]byte, error) {
	if len(data) < headerSize {
		return nil, errors.New("block too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])

	if compressedSize == 0 {
		if uint32(len(data)) < headerSize+uncompressedSize {
			return nil, errors.New("block data too small")
		}
		return data[headerSize : headerSize+uncompressedSize], nil
	}

	if uint32(len(data)) < headerSize+compressedSize {
		return nil, errors.New("compressed block data too small")
	}
	payload := data[headerSize : headerSize+compressedSize]

	switch c {
	case LZ4:
		// An lz4 block cannot expand beyond ~255x, so a size field past that
		// bound is a corrupt header, not a large block.
		if uint64(uncompressedSize) > uint64(len(payload))*255+16 {
			return nil, errors.New("implausible uncompressed size for lz4 block")
		}
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil

	case Zstd:
		hint := int(uncompressedSize)
		if hint > maxSizeHint {
			hint = maxSizeHint
		}
		dec := getZstdDecoder()
		out, err := dec.DecodeAll(payload, make([]byte, 0, hint))
		zstdDecoderPool.Put(dec)
		if err != nil {
			return nil, err
		}
		if uint32(len(out)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil

	default:
		return nil, errors.New("compressed block with unknown compression")
	}
}
