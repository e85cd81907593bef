package carrier

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is returned when the auto plan is asked for a non-positive
// number of bins.
var ErrInvalidCount = errors.New("bin count must be positive")

// UnknownPlanError indicates an unrecognized plan name.
type UnknownPlanError struct {
	Name string
}

func (e *UnknownPlanError) Error() string {
	return fmt.Sprintf("unknown carrier plan: %q", e.Name)
}

// CapacityError indicates that more carrier bins are needed than the vector
// or plan can provide. It is raised before any modulation happens.
type CapacityError struct {
	Needed    int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: need %d carrier bins, have %d", e.Needed, e.Available)
}
