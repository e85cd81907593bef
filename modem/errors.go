package modem

import (
	"errors"
	"fmt"
)

// ErrUndecodable is returned when no candidate carrier configuration yields a
// frame with a valid checksum.
var ErrUndecodable = errors.New("vector does not decode under any candidate carrier configuration")

// ErrInvalidDimension indicates a non-positive configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrDimensionMismatch indicates that a vector's length disagrees with the
// configured or recorded dimension.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// LengthMismatchError indicates that the decoded payload length disagrees
// with the manifest or frame header.
type LengthMismatchError struct {
	Declared int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: declared %d bytes, have %d", e.Declared, e.Actual)
}

// IntegrityError indicates that the recomputed payload CRC32 disagrees with
// the checksum carried in the frame header or manifest.
type IntegrityError struct {
	Expected uint32
	Computed uint32
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity check failed: expected crc32 %08x, computed %08x", e.Expected, e.Computed)
}

// InvalidTritError indicates a ternary symbol outside {-1, 0, +1}.
type InvalidTritError struct {
	Index int
	Value int8
}

func (e *InvalidTritError) Error() string {
	return fmt.Sprintf("invalid trit %d at index %d", e.Value, e.Index)
}
