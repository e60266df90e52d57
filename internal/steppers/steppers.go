// Package steppers provides fixed-step integration strategies for the
// scalar envelope ODE. Each stepper implements [beam.Stepper]: given
// the slope function, the current radius and the step size it returns
// the increment to add to the radius.
package steppers

import (
	"fmt"

	"github.com/san-kum/beamenv/internal/beam"
)

// New returns the stepper registered under name.
func New(name string) (beam.Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "ralston":
		return NewRalston(), nil
	case "rk4":
		return NewRK4(), nil
	}
	return nil, fmt.Errorf("unknown stepper: %s", name)
}

// Names lists the registered stepper names.
func Names() []string {
	return []string{"euler", "ralston", "rk4"}
}
