package beam

import "math"

// Params holds the immutable inputs for one envelope integration run.
// All quantities are SI: current in amperes, radii in meters, slope in
// radians, emittance in meter-radians.
type Params struct {
	Current        float64 // beam current
	Beta           float64 // reference-particle v/c, in (0,1)
	Gamma          float64 // reference-particle Lorentz factor, > 1
	R0             float64 // initial envelope radius
	RP0            float64 // initial envelope slope
	Emittance      float64 // geometric emittance; DefaultEmittance when zero
	Steps          int     // fixed step count; DefaultSteps when zero
	FinalZ         float64 // drift length; DefaultFinalZ when zero
	Neutralization float64 // charge-neutralization fraction, recorded only
}

// Normalized returns a copy with zero-valued optional fields replaced
// by the package defaults.
func (p Params) Normalized() Params {
	if p.Emittance == 0 {
		p.Emittance = DefaultEmittance
	}
	if p.Steps == 0 {
		p.Steps = DefaultSteps
	}
	if p.FinalZ == 0 {
		p.FinalZ = DefaultFinalZ
	}
	return p
}

// SlopeFunc gives the local envelope slope magnitude r'(r). It returns
// an error when the slope is undefined at r (negative radicand).
type SlopeFunc func(r float64) (float64, error)

// Stepper advances the scalar envelope ODE by one fixed step of size h,
// returning the increment to add to r.
type Stepper interface {
	Step(f SlopeFunc, r, h float64) (float64, error)
}

// Metric observes trajectory samples and reduces them to one value.
type Metric interface {
	Name() string
	Observe(z, r float64)
	Value() float64
	Reset()
}

// Trajectory is an ordered sequence of (z, r) samples produced by one
// integration run. Z is strictly increasing. The slices are parallel
// and never mutated after creation.
type Trajectory struct {
	Z []float64
	R []float64
}

func (t *Trajectory) Len() int { return len(t.Z) }

// Final returns the last (z, r) sample.
func (t *Trajectory) Final() (z, r float64) {
	n := len(t.Z)
	if n == 0 {
		return 0, 0
	}
	return t.Z[n-1], t.R[n-1]
}

func (t *Trajectory) Clone() *Trajectory {
	c := &Trajectory{
		Z: make([]float64, len(t.Z)),
		R: make([]float64, len(t.R)),
	}
	copy(c.Z, t.Z)
	copy(c.R, t.R)
	return c
}

// IsValid reports whether every sample is finite, radii are
// non-negative and Z is strictly increasing.
func (t *Trajectory) IsValid() bool {
	if len(t.Z) != len(t.R) {
		return false
	}
	for i := range t.Z {
		if math.IsNaN(t.Z[i]) || math.IsInf(t.Z[i], 0) {
			return false
		}
		if math.IsNaN(t.R[i]) || math.IsInf(t.R[i], 0) || t.R[i] < 0 {
			return false
		}
		if i > 0 && t.Z[i] <= t.Z[i-1] {
			return false
		}
	}
	return true
}
