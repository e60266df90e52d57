package metrics

// Peak tracks the largest envelope radius seen.
type Peak struct {
	name    string
	max     float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{name: "peak_radius"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(z, r float64) {
	if p.samples == 0 || r > p.max {
		p.max = r
	}
	p.samples++
}

func (p *Peak) Value() float64 {
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.samples = 0
}
