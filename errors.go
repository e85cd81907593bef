package spectral

import (
	"errors"
	"fmt"

	"github.com/phasorlab/spectral/carrier"
	"github.com/phasorlab/spectral/modem"
)

var (
	// ErrMissingManifest is returned when a decode that needs a manifest
	// receives nil.
	ErrMissingManifest = errors.New("manifest required")

	// ErrUndecodable is returned when no candidate carrier configuration
	// yields a payload with a valid checksum.
	ErrUndecodable = errors.New("undecodable vector")
)

// ErrInvalidDimension indicates a missing or non-positive dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrDimensionMismatch indicates a vector whose length disagrees with the
// configured or recorded dimension.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrUnknownPlan indicates a carrier plan name outside the known set.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrUnknownPlan struct {
	Name  string
	cause error
}

func (e *ErrUnknownPlan) Error() string {
	return fmt.Sprintf("unknown carrier plan: %q", e.Name)
}

func (e *ErrUnknownPlan) Unwrap() error { return e.cause }

// ErrCapacity indicates a payload that needs more carrier bins than the
// dimension and plan provide.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCapacity struct {
	Needed    int
	Available int
	cause     error
}

func (e *ErrCapacity) Error() string {
	return fmt.Sprintf("payload needs %d carrier bins, only %d available", e.Needed, e.Available)
}

func (e *ErrCapacity) Unwrap() error { return e.cause }

// ErrIntegrity indicates a payload whose recomputed CRC32 disagrees with
// the checksum in the frame header or manifest.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrIntegrity struct {
	Expected uint32
	Computed uint32
	cause    error
}

func (e *ErrIntegrity) Error() string {
	return fmt.Sprintf("integrity check failed: expected crc32 %08x, computed %08x", e.Expected, e.Computed)
}

func (e *ErrIntegrity) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, modem.ErrUndecodable) {
		return fmt.Errorf("%w: %w", ErrUndecodable, err)
	}

	var id *modem.ErrInvalidDimension
	if errors.As(err, &id) {
		return &ErrInvalidDimension{Dimension: id.Dimension, cause: err}
	}
	var dm *modem.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	var up *carrier.UnknownPlanError
	if errors.As(err, &up) {
		return &ErrUnknownPlan{Name: up.Name, cause: err}
	}
	var ce *carrier.CapacityError
	if errors.As(err, &ce) {
		return &ErrCapacity{Needed: ce.Needed, Available: ce.Available, cause: err}
	}
	var ie *modem.IntegrityError
	if errors.As(err, &ie) {
		return &ErrIntegrity{Expected: ie.Expected, Computed: ie.Computed, cause: err}
	}

	return err
}
