package metrics

import "github.com/san-kum/beamenv/internal/beam"

// Growth reports the envelope growth ratio r_final/r_initial.
type Growth struct {
	name    string
	first   float64
	last    float64
	samples int
}

func NewGrowth() *Growth {
	return &Growth{name: "growth"}
}

func (g *Growth) Name() string { return g.name }

func (g *Growth) Observe(z, r float64) {
	if g.samples == 0 {
		g.first = r
	}
	g.last = r
	g.samples++
}

func (g *Growth) Value() float64 {
	if g.samples == 0 || g.first == 0 {
		return 0
	}
	return g.last / g.first
}

func (g *Growth) Reset() {
	g.first = 0
	g.last = 0
	g.samples = 0
}

// Apply runs every metric over the trajectory and collects the values.
func Apply(t *beam.Trajectory, ms ...beam.Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for i := range t.Z {
		for _, m := range ms {
			m.Observe(t.Z[i], t.R[i])
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Defaults returns the metric set recorded for every stored run.
func Defaults() []beam.Metric {
	return []beam.Metric{
		NewGrowth(),
		NewPeak(),
		NewMonotonicity(),
	}
}
