package mc

import (
	"math"

	"github.com/atomsim/atomsim/mc/units"
)

// ThermalDeBroglie returns the thermal de Broglie wavelength in Angstrom for
// a fragment of the given molecular weight (g/mol) at inverse temperature
// beta (1/eV):
//
//	lambda = h / sqrt(2*pi*m/beta)
//
// Dimensional check: with m in kg and beta in 1/J, sqrt(m/beta) has units
// kg*m/s, so h [J*s] over it is meters, converted to Angstrom at the end.
func ThermalDeBroglie(molecularWeight, beta float64) float64 {
	mass := molecularWeight * 1e-3 / units.Avogadro // kg per particle
	betaSI := beta / units.JoulePerEV               // 1/eV -> 1/J
	return units.Planck / math.Sqrt(2*math.Pi*mass/betaSI) * units.AngstromPerMeter
}
