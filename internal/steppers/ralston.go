package steppers

import "github.com/san-kum/beamenv/internal/beam"

// Ralston coefficients (2nd-order RK, minimum truncation error)
const (
	ralstonB1 = 0.25
	ralstonB2 = 0.75
	ralstonA2 = 2.0 / 3.0
)

type Ralston struct{}

func NewRalston() *Ralston {
	return &Ralston{}
}

func (rs *Ralston) Step(f beam.SlopeFunc, r, h float64) (float64, error) {
	f1, err := f(r)
	if err != nil {
		return 0, err
	}
	k1 := h * f1

	f2, err := f(r + ralstonA2*k1)
	if err != nil {
		return 0, err
	}

	return ralstonB1*k1 + ralstonB2*h*f2, nil
}
