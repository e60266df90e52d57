package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/beamenv/internal/beam"
)

func sampleTrajectory() *beam.Trajectory {
	return &beam.Trajectory{
		Z: []float64{0, 0.1, 0.2, 0.3, 0.4},
		R: []float64{0.005, 0.0052, 0.0055, 0.0059, 0.0064},
	}
}

func TestGrowth(t *testing.T) {
	g := NewGrowth()
	traj := sampleTrajectory()
	for i := range traj.Z {
		g.Observe(traj.Z[i], traj.R[i])
	}

	expected := 0.0064 / 0.005
	if math.Abs(g.Value()-expected) > 1e-12 {
		t.Errorf("expected growth %g, got %g", expected, g.Value())
	}
}

func TestGrowthEmpty(t *testing.T) {
	g := NewGrowth()
	if g.Value() != 0 {
		t.Errorf("expected zero growth without samples, got %g", g.Value())
	}
}

func TestPeak(t *testing.T) {
	p := NewPeak()
	p.Observe(0, 0.005)
	p.Observe(0.1, 0.008)
	p.Observe(0.2, 0.006)

	if p.Value() != 0.008 {
		t.Errorf("expected peak 0.008, got %g", p.Value())
	}
}

func TestMonotonicity(t *testing.T) {
	m := NewMonotonicity()
	for _, r := range []float64{1, 2, 3, 2, 4} {
		m.Observe(0, r)
	}

	// One contraction in four steps.
	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected 0.75, got %g", m.Value())
	}
}

func TestMonotonicityAllIncreasing(t *testing.T) {
	m := NewMonotonicity()
	traj := sampleTrajectory()
	for i := range traj.Z {
		m.Observe(traj.Z[i], traj.R[i])
	}

	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 for an expanding envelope, got %g", m.Value())
	}
}

func TestApplyAndReset(t *testing.T) {
	traj := sampleTrajectory()
	ms := Defaults()

	first := Apply(traj, ms...)
	second := Apply(traj, ms...)

	for name, v := range first {
		if second[name] != v {
			t.Errorf("metric %s not reset between applications: %g vs %g", name, v, second[name])
		}
	}

	if _, ok := first["growth"]; !ok {
		t.Error("growth metric missing")
	}
	if _, ok := first["peak_radius"]; !ok {
		t.Error("peak_radius metric missing")
	}
	if _, ok := first["monotonicity"]; !ok {
		t.Error("monotonicity metric missing")
	}
}
