package metrics

// Monotonicity reports the fraction of steps with non-decreasing
// radius. An expanding envelope with non-negative initial divergence
// scores 1.0; anything lower flags contraction somewhere along the
// drift.
type Monotonicity struct {
	name       string
	prev       float64
	violations int
	steps      int
	samples    int
}

func NewMonotonicity() *Monotonicity {
	return &Monotonicity{name: "monotonicity"}
}

func (m *Monotonicity) Name() string { return m.name }

func (m *Monotonicity) Observe(z, r float64) {
	if m.samples > 0 {
		m.steps++
		if r < m.prev {
			m.violations++
		}
	}
	m.prev = r
	m.samples++
}

func (m *Monotonicity) Value() float64 {
	if m.steps == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.steps)
}

func (m *Monotonicity) Reset() {
	m.prev = 0
	m.violations = 0
	m.steps = 0
	m.samples = 0
}
