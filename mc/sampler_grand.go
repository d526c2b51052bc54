package mc

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/atomsim/atomsim/mc/atoms"
)

// AddSampler inserts a copy of an additive fragment at a uniformly random
// point in the cell with a random orientation, labelled with a fresh tag per
// selected slot. Pair it with a NotExistTagSelector.
type AddSampler struct {
	samplerBase
	additive        *atoms.Atoms
	molecularWeight float64
}

// NewAddSampler creates an insertion move for the given additive fragment.
func NewAddSampler(selector TagSelector, additive *atoms.Atoms) (*AddSampler, error) {
	if additive == nil || additive.Len() == 0 {
		return nil, fmt.Errorf("%w: additive must contain at least one site", ErrInvalidParameter)
	}
	mw := additive.TotalMass()
	if mw <= 0 {
		return nil, fmt.Errorf("%w: additive has zero molecular weight", ErrInvalidParameter)
	}
	return &AddSampler{
		samplerBase: samplerBase{
			name:        "Add",
			tagSelector: selector,
			numTags:     1,
			energy:      potentialEnergy,
		},
		additive:        additive.Copy(),
		molecularWeight: mw,
	}, nil
}

// Sample appends one freshly tagged, randomly placed and oriented copy of the
// additive per selected tag.
func (s *AddSampler) Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error) {
	candidate := sys.Copy()
	cell := sys.Cell()
	for _, tag := range tags {
		fragment := s.additive.Copy()
		fragment.SetUniformTag(tag)

		point := cell.CartesianFromFractional(atoms.Vec3{
			rng.Float64(), rng.Float64(), rng.Float64(),
		})
		fragment.Translate(point.Sub(fragment.CenterOfMass()))

		phi := rng.Float64() * 360
		theta := rng.Float64() * 360
		psi := rng.Float64() * 360
		fragment.EulerRotate(phi, theta, psi, fragment.CenterOfMass())

		candidate = atoms.Concat(candidate, fragment)
	}
	candidate.SetCalculator(sys.Calculator())
	return candidate, nil
}

// Acceptability is the grand-canonical insertion ratio
// min(1, exp(-beta*deltaEnergy) * V / (N * lambda^3)) with V the candidate
// volume and N the post-insertion count of distinct movable groups.
func (s *AddSampler) Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64 {
	lambda := ThermalDeBroglie(s.molecularWeight, beta)
	return addAcceptability(beta, deltaEnergy, after.Volume(), countGroups(after), lambda)
}

func addAcceptability(beta, deltaEnergy, volume float64, n int, lambda float64) float64 {
	if n <= 0 || lambda <= 0 {
		return 0
	}
	ratio := math.Exp(-beta*deltaEnergy) * volume / (float64(n) * lambda * lambda * lambda)
	return math.Min(1, ratio)
}

// RemoveSampler deletes all sites carrying the selected tags. The additive
// describes the species being removed; its molecular weight enters the
// acceptance ratio through the thermal de Broglie wavelength.
type RemoveSampler struct {
	samplerBase
	molecularWeight float64
}

// NewRemoveSampler creates a removal move for the given species.
func NewRemoveSampler(selector TagSelector, additive *atoms.Atoms) (*RemoveSampler, error) {
	if additive == nil || additive.Len() == 0 {
		return nil, fmt.Errorf("%w: additive must contain at least one site", ErrInvalidParameter)
	}
	mw := additive.TotalMass()
	if mw <= 0 {
		return nil, fmt.Errorf("%w: additive has zero molecular weight", ErrInvalidParameter)
	}
	return &RemoveSampler{
		samplerBase: samplerBase{
			name:        "Remove",
			tagSelector: selector,
			numTags:     1,
			energy:      potentialEnergy,
		},
		molecularWeight: mw,
	}, nil
}

// Sample drops every site whose tag was selected.
func (s *RemoveSampler) Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error) {
	selected := tagSet(tags)
	keep := make([]bool, sys.Len())
	for i, t := range sys.Tags() {
		keep[i] = !selected[t]
	}
	candidate := sys.Filter(keep)
	candidate.SetCalculator(sys.Calculator())
	return candidate, nil
}

// Acceptability is the grand-canonical removal ratio
// min(1, exp(-beta*deltaEnergy) * (N+1) * lambda^3 / V) with N the
// post-removal count of distinct movable groups and V the cell volume.
func (s *RemoveSampler) Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64 {
	lambda := ThermalDeBroglie(s.molecularWeight, beta)
	return removeAcceptability(beta, deltaEnergy, before.Volume(), countGroups(after), lambda)
}

func removeAcceptability(beta, deltaEnergy, volume float64, n int, lambda float64) float64 {
	if volume <= 0 {
		return 0
	}
	ratio := math.Exp(-beta*deltaEnergy) * float64(n+1) * lambda * lambda * lambda / volume
	return math.Min(1, ratio)
}
