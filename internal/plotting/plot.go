// Package plotting renders envelope trajectories to PNG using
// gonum/plot. Radii are drawn in millimeters.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/beamenv/internal/beam"
)

func trajectoryPoints(traj *beam.Trajectory) plotter.XYs {
	pts := make(plotter.XYs, traj.Len())
	for i := range traj.Z {
		pts[i].X = traj.Z[i]
		pts[i].Y = traj.R[i] * 1e3
	}
	return pts
}

func newEnvelopePlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "z (m)"
	p.Y.Label.Text = "envelope radius (mm)"
	p.Legend.Top = true
	p.Legend.Left = true
	return p
}

// SaveTrajectoryPNG writes the analytic trajectory as a line plot.
func SaveTrajectoryPNG(path, title string, traj *beam.Trajectory) error {
	if traj.Len() < 2 {
		return fmt.Errorf("plotting: trajectory too short (%d samples)", traj.Len())
	}

	p := newEnvelopePlot(title)
	if err := plotutil.AddLines(p, "analytic envelope", trajectoryPoints(traj)); err != nil {
		return fmt.Errorf("plotting: adding line: %w", err)
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// SaveOverlayPNG writes the analytic trajectory with the simulated RMS
// samples overlaid as scatter points.
func SaveOverlayPNG(path, title string, traj *beam.Trajectory, simZ, simR []float64) error {
	if traj.Len() < 2 {
		return fmt.Errorf("plotting: trajectory too short (%d samples)", traj.Len())
	}
	if len(simZ) != len(simR) || len(simZ) == 0 {
		return fmt.Errorf("plotting: invalid simulated data (%d z, %d r)", len(simZ), len(simR))
	}

	p := newEnvelopePlot(title)
	if err := plotutil.AddLines(p, "analytic envelope", trajectoryPoints(traj)); err != nil {
		return fmt.Errorf("plotting: adding line: %w", err)
	}

	pts := make(plotter.XYs, len(simZ))
	for i := range simZ {
		pts[i].X = simZ[i]
		pts[i].Y = simR[i] * 1e3
	}
	if err := plotutil.AddScatters(p, "simulated rms", pts); err != nil {
		return fmt.Errorf("plotting: adding scatter: %w", err)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
