// Package envelope implements the analytic envelope expansion of a
// beam in a field-free drift under space-charge and emittance forces.
//
// The envelope radius obeys a first-order ODE in the longitudinal
// position z whose slope follows from the perveance K and the geometric
// emittance:
//
//	r'(rm) = sqrt(rp0^2 + emit^2*(1/r0^2 - 1/rm^2) + (K/2)*ln(rm/r0))
//
// [Perveance] computes K from the beam current and the
// reference-particle kinematics, [NewSlope] binds the slope closure,
// and [Expand] drives a [beam.Stepper] over the full drift to produce
// a [beam.Trajectory]. [Expansion] exposes the same integration one
// step at a time for live views.
package envelope
