// Package calc provides energy calculators for atomic configurations.
//
// All calculators implement atoms.Calculator. They are analytic and never
// fail; energies are in eV.
package calc

import (
	"math"

	"github.com/atomsim/atomsim/mc/atoms"
)

// Constant always reports the same energy. Useful as a null potential in
// tests and for sampling uniform ensembles.
type Constant struct {
	Value float64
}

// PotentialEnergy returns the configured constant.
func (c Constant) PotentialEnergy(*atoms.Atoms) float64 { return c.Value }

// Harmonic binds every site to a fixed center with identical springs:
// E = 0.5 * K * sum |p_i - center|^2. Robust to site insertion and removal,
// which makes it a convenient test potential for grand-canonical moves.
type Harmonic struct {
	K      float64 // spring constant in eV/Ang^2
	Center atoms.Vec3
}

// PotentialEnergy returns the summed spring energy.
func (h Harmonic) PotentialEnergy(a *atoms.Atoms) float64 {
	var e float64
	for _, p := range a.Positions() {
		d := p.Sub(h.Center)
		e += 0.5 * h.K * d.Dot(d)
	}
	return e
}

// LennardJones is a single-species 12-6 pair potential with a radial cutoff
// under the minimum-image convention. Vacancy sites do not interact.
type LennardJones struct {
	Epsilon float64 // well depth in eV
	Sigma   float64 // zero-crossing distance in Ang
	Cutoff  float64 // interaction cutoff in Ang; <= 0 disables the cutoff
}

// PotentialEnergy sums the pair energies over all non-vacancy site pairs.
func (lj LennardJones) PotentialEnergy(a *atoms.Atoms) float64 {
	positions := a.Positions()
	symbols := a.ChemicalSymbols()
	cell := a.Cell()
	cutoff2 := lj.Cutoff * lj.Cutoff
	sigma2 := lj.Sigma * lj.Sigma

	var e float64
	for i := 0; i < len(positions); i++ {
		if symbols[i] == atoms.VacancySymbol {
			continue
		}
		for j := i + 1; j < len(positions); j++ {
			if symbols[j] == atoms.VacancySymbol {
				continue
			}
			d := minimumImage(cell, positions[j].Sub(positions[i]))
			r2 := d.Dot(d)
			if lj.Cutoff > 0 && r2 > cutoff2 {
				continue
			}
			sr6 := sigma2 / r2
			sr6 = sr6 * sr6 * sr6
			e += 4 * lj.Epsilon * (sr6*sr6 - sr6)
		}
	}
	return e
}

// minimumImage wraps a displacement vector into the nearest periodic image.
func minimumImage(cell atoms.Cell, d atoms.Vec3) atoms.Vec3 {
	f := cell.FractionalFromCartesian(d)
	for k := range f {
		f[k] -= math.Round(f[k])
	}
	return cell.CartesianFromFractional(f)
}
