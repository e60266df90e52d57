package envelope

import (
	"fmt"

	"github.com/san-kum/beamenv/internal/beam"
)

// Perveance computes the dimensionless generalized perveance
// K = (I/I0) * (2/beta^3) * (1/gamma^3) for a beam of current amperes
// carried by a reference particle with the given kinematics. Zero
// current gives exactly zero perveance.
func Perveance(current, beta, gamma float64) (float64, error) {
	if beta <= 0 || beta >= 1 || gamma <= 1 {
		return 0, fmt.Errorf("%w: beta=%g gamma=%g", beam.ErrInvalidKinematics, beta, gamma)
	}
	if current < 0 {
		return 0, fmt.Errorf("%w: negative current %g", beam.ErrInvalidParams, current)
	}
	return (current / beam.CharacteristicCurrent) * (2.0 / (beta * beta * beta)) / (gamma * gamma * gamma), nil
}
