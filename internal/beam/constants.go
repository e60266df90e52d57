package beam

import "math"

// CODATA 2018 values.
const (
	LightSpeed         = 2.99792458e8      // m/s
	ElementaryCharge   = 1.602176634e-19   // C
	ProtonMass         = 1.67262192369e-27 // kg
	VacuumPermittivity = 8.8541878128e-12  // F/m
)

// CharacteristicCurrent is the proton characteristic current
// I0 = 4*pi*eps0*m_p*c^3/e, roughly 31.3 MA. Perveance is the beam
// current expressed in units of I0 scaled by the kinematic factors.
const CharacteristicCurrent = 4 * math.Pi * VacuumPermittivity * ProtonMass *
	LightSpeed * LightSpeed * LightSpeed / ElementaryCharge

const (
	// DefaultEmittance is the geometric KV (edge) emittance of the
	// reference 0.3 mm-mrad beam: 4 x 0.3e-6 m rad.
	DefaultEmittance = 1.2e-6

	// DefaultSteps is the number of fixed integration steps when the
	// caller does not choose one.
	DefaultSteps = 1000

	// DefaultFinalZ is the drift length integrated over by default.
	DefaultFinalZ = 1.0
)
