// Package units provides the physical constants used across the Monte Carlo
// engine. Values are the exact CODATA 2018 definitions; energies are in eV,
// lengths in Angstrom, temperatures in Kelvin unless stated otherwise.
package units

const (
	// KB is the Boltzmann constant in eV/K.
	KB = 8.617333262e-5

	// Planck is the Planck constant in J*s.
	Planck = 6.62607015e-34

	// Avogadro is the Avogadro constant in 1/mol.
	Avogadro = 6.02214076e23

	// JoulePerEV converts eV to J (elementary charge in C).
	JoulePerEV = 1.602176634e-19

	// AngstromPerMeter converts m to Angstrom.
	AngstromPerMeter = 1e10
)
