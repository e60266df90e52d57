package envelope

import (
	"fmt"
	"math"

	"github.com/san-kum/beamenv/internal/beam"
)

// NewSlope binds the envelope slope closure for a drift, with the
// perveance k, geometric emittance emit, initial radius r0 and initial
// slope rp0 fixed and the current radius as the free argument:
//
//	r'(rm) = sqrt(rp0^2 + emit^2*(1/r0^2 - 1/rm^2) + (k/2)*ln(rm/r0))
//
// At rm = r0 both the emittance and the log term vanish and the slope
// is exactly rp0. A negative radicand means the envelope equation has
// no real solution at rm; the closure rejects it rather than returning
// NaN.
func NewSlope(k, emit, r0, rp0 float64) (beam.SlopeFunc, error) {
	if r0 <= 0 {
		return nil, fmt.Errorf("%w: r0 must be positive, got %g", beam.ErrInvalidParams, r0)
	}
	if emit < 0 {
		return nil, fmt.Errorf("%w: emittance must be non-negative, got %g", beam.ErrInvalidParams, emit)
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: perveance must be non-negative, got %g", beam.ErrInvalidParams, k)
	}

	return func(rm float64) (float64, error) {
		if rm <= 0 {
			return 0, fmt.Errorf("%w: radius %g", beam.ErrNotPhysical, rm)
		}
		radicand := rp0*rp0 + emit*emit*(1.0/(r0*r0)-1.0/(rm*rm)) + 0.5*k*math.Log(rm/r0)
		if radicand < 0 {
			return 0, fmt.Errorf("%w: radicand %g at r=%g", beam.ErrNotPhysical, radicand, rm)
		}
		return math.Sqrt(radicand), nil
	}, nil
}
