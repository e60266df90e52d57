// Package analysis compares analytic envelope trajectories against
// simulated RMS beam-size data.
package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/beamenv/internal/beam"
)

// Deviation summarizes how far a simulated curve sits from the
// analytic trajectory, evaluated on the simulated z grid.
type Deviation struct {
	Max      float64 // largest absolute deviation (m)
	RMS      float64 // root-mean-square deviation (m)
	FinalRel float64 // relative error at the last simulated sample
	Samples  int     // number of compared samples
}

// Compare interpolates the analytic trajectory onto the simulated z
// grid and accumulates deviation statistics. Simulated samples must lie
// within the trajectory's z range.
func Compare(traj *beam.Trajectory, z, r []float64) (Deviation, error) {
	var d Deviation

	if traj.Len() < 2 {
		return d, fmt.Errorf("analysis: trajectory too short (%d samples)", traj.Len())
	}
	if len(z) != len(r) {
		return d, fmt.Errorf("analysis: mismatched simulated arrays (%d vs %d)", len(z), len(r))
	}
	if len(z) == 0 {
		return d, fmt.Errorf("analysis: no simulated samples")
	}

	sumSq := 0.0
	for i := range z {
		ra, err := Interpolate(traj, z[i])
		if err != nil {
			return Deviation{}, err
		}
		dev := math.Abs(r[i] - ra)
		if dev > d.Max {
			d.Max = dev
		}
		sumSq += dev * dev
		d.Samples++

		if i == len(z)-1 && ra != 0 {
			d.FinalRel = dev / math.Abs(ra)
		}
	}
	d.RMS = math.Sqrt(sumSq / float64(d.Samples))

	return d, nil
}

// Interpolate evaluates the trajectory radius at z by linear
// interpolation between the bracketing samples.
func Interpolate(traj *beam.Trajectory, z float64) (float64, error) {
	n := traj.Len()
	if n == 0 {
		return 0, fmt.Errorf("analysis: empty trajectory")
	}
	if z < traj.Z[0] || z > traj.Z[n-1] {
		return 0, fmt.Errorf("analysis: z=%g outside trajectory range [%g, %g]", z, traj.Z[0], traj.Z[n-1])
	}

	// Binary search for the bracketing interval.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if traj.Z[mid] <= z {
			lo = mid
		} else {
			hi = mid
		}
	}

	z0, z1 := traj.Z[lo], traj.Z[hi]
	r0, r1 := traj.R[lo], traj.R[hi]
	if z1 == z0 {
		return r0, nil
	}
	frac := (z - z0) / (z1 - z0)
	return r0 + frac*(r1-r0), nil
}
