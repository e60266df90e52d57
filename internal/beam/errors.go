package beam

import (
	"errors"
	"fmt"
)

// Domain errors for envelope integration.
var (
	// ErrInvalidKinematics indicates beta outside (0,1) or gamma <= 1.
	ErrInvalidKinematics = errors.New("beam: invalid kinematics (need beta in (0,1) and gamma > 1)")

	// ErrNotPhysical indicates the slope radicand went negative, so the
	// envelope equation has no real solution at that radius.
	ErrNotPhysical = errors.New("beam: envelope not physical (negative slope radicand)")

	// ErrInvalidParams indicates a parameter value outside its valid range.
	ErrInvalidParams = errors.New("beam: invalid parameters")

	// ErrInvalidState indicates a non-finite radius appeared mid-run.
	ErrInvalidState = errors.New("beam: invalid state (NaN or Inf radius)")
)

// StepError wraps an error with the integration step it occurred at.
// A failed step aborts the whole trajectory; there is no partial-result
// semantics.
type StepError struct {
	Step    int
	Z       float64
	R       float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (z=%.6f, r=%.6g): %v", e.Step, e.Z, e.R, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
