// Package beam provides core primitives for envelope simulation of a
// charged-particle beam in a field-free drift.
//
// The package defines the fundamental types shared by the rest of the
// module:
//
//   - [Params]: immutable inputs for one integration run
//   - [Trajectory]: ordered (z, r) samples of the envelope radius
//   - [SlopeFunc]: local envelope slope r'(r)
//   - [Stepper]: fixed-step numerical stepping strategy
//   - [Metric]: per-run observable over trajectory samples
//
// # Example
//
//	p := beam.Params{Current: 0.014, Beta: 0.073, Gamma: 1.00266,
//		R0: 0.005, RP0: 0.001}
//	traj, _ := envelope.Expand(p, steppers.NewRalston())
//
// # Thread Safety
//
// Params is a value type and Trajectory is never mutated after
// creation, so independent runs may proceed concurrently.
package beam
