package steppers

import "github.com/san-kum/beamenv/internal/beam"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f beam.SlopeFunc, r, h float64) (float64, error) {
	fr, err := f(r)
	if err != nil {
		return 0, err
	}
	return h * fr, nil
}
