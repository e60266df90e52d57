package envelope

import (
	"fmt"
	"math"

	"github.com/san-kum/beamenv/internal/beam"
)

// Expansion integrates the envelope ODE one step at a time. The zero
// value is not usable; construct with NewExpansion.
type Expansion struct {
	params  beam.Params
	stepper beam.Stepper
	slope   beam.SlopeFunc
	k       float64
	h       float64
	z, r    float64
	step    int
}

// NewExpansion validates the parameters, computes the perveance and
// binds the slope closure. The returned Expansion starts at (0, R0).
func NewExpansion(p beam.Params, st beam.Stepper) (*Expansion, error) {
	p = p.Normalized()

	if st == nil {
		return nil, fmt.Errorf("%w: nil stepper", beam.ErrInvalidParams)
	}
	if p.Steps < 1 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", beam.ErrInvalidParams, p.Steps)
	}
	if p.FinalZ <= 0 {
		return nil, fmt.Errorf("%w: final z must be positive, got %g", beam.ErrInvalidParams, p.FinalZ)
	}
	if p.Neutralization < 0 || p.Neutralization >= 1 {
		return nil, fmt.Errorf("%w: neutralization fraction must be in [0,1), got %g", beam.ErrInvalidParams, p.Neutralization)
	}

	k, err := Perveance(p.Current, p.Beta, p.Gamma)
	if err != nil {
		return nil, err
	}

	slope, err := NewSlope(k, p.Emittance, p.R0, p.RP0)
	if err != nil {
		return nil, err
	}

	return &Expansion{
		params:  p,
		stepper: st,
		slope:   slope,
		k:       k,
		h:       p.FinalZ / float64(p.Steps),
		r:       p.R0,
	}, nil
}

// Params returns the normalized parameters of this run.
func (e *Expansion) Params() beam.Params { return e.params }

// Perveance returns the dimensionless perveance of this run.
func (e *Expansion) Perveance() float64 { return e.k }

// H returns the fixed step size.
func (e *Expansion) H() float64 { return e.h }

// At returns the current (z, r) state.
func (e *Expansion) At() (z, r float64) { return e.z, e.r }

// Done reports whether the integration has reached the final z.
func (e *Expansion) Done() bool { return e.z >= e.params.FinalZ }

// Advance takes one fixed step. Failures carry the step index and the
// state at which they occurred; after a failure the Expansion must be
// discarded.
func (e *Expansion) Advance() error {
	incr, err := e.stepper.Step(e.slope, e.r, e.h)
	if err != nil {
		return &beam.StepError{Step: e.step, Z: e.z, R: e.r, Wrapped: err}
	}
	e.r += incr
	if math.IsNaN(e.r) || math.IsInf(e.r, 0) {
		return &beam.StepError{Step: e.step, Z: e.z, R: e.r, Wrapped: beam.ErrInvalidState}
	}
	e.z += e.h
	e.step++
	return nil
}

// Expand integrates the full drift and returns the trajectory. It is a
// pure function of its inputs: repeated calls with equal parameters
// produce bit-identical trajectories. The first sample is exactly
// (0, R0) and one sample is appended per step while z < FinalZ.
func Expand(p beam.Params, st beam.Stepper) (*beam.Trajectory, error) {
	ex, err := NewExpansion(p, st)
	if err != nil {
		return nil, err
	}

	n := ex.Params().Steps
	traj := &beam.Trajectory{
		Z: make([]float64, 0, n+1),
		R: make([]float64, 0, n+1),
	}

	for !ex.Done() {
		z, r := ex.At()
		traj.Z = append(traj.Z, z)
		traj.R = append(traj.R, r)
		if err := ex.Advance(); err != nil {
			return nil, err
		}
	}

	return traj, nil
}
