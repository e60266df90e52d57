package steppers

import "github.com/san-kum/beamenv/internal/beam"

type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (rk *RK4) Step(f beam.SlopeFunc, r, h float64) (float64, error) {
	f1, err := f(r)
	if err != nil {
		return 0, err
	}
	k1 := h * f1

	f2, err := f(r + 0.5*k1)
	if err != nil {
		return 0, err
	}
	k2 := h * f2

	f3, err := f(r + 0.5*k2)
	if err != nil {
		return 0, err
	}
	k3 := h * f3

	f4, err := f(r + k3)
	if err != nil {
		return 0, err
	}
	k4 := h * f4

	return (k1 + 2*k2 + 2*k3 + k4) / 6.0, nil
}
