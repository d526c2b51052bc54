package mc

import (
	"math/rand"

	"github.com/atomsim/atomsim/mc/atoms"
)

var defaultTranslateRange = moveRange{low: -0.15, high: 0.15}

// TranslateSampler rigidly translates the sites of one selected group by a
// vector drawn independently per axis from the configured ranges.
type TranslateSampler struct {
	samplerBase
	xRange, yRange, zRange moveRange
}

// NewTranslateSampler creates a translation move. Each range is [low, high]
// in Angstrom; a nil range defaults to [-0.15, 0.15].
func NewTranslateSampler(selector TagSelector, xRange, yRange, zRange []float64) (*TranslateSampler, error) {
	s := &TranslateSampler{
		samplerBase: samplerBase{
			name:        "Translate",
			tagSelector: selector,
			numTags:     1,
			energy:      potentialEnergy,
		},
	}
	var err error
	if s.xRange, err = rangeOrDefault(xRange, defaultTranslateRange); err != nil {
		return nil, err
	}
	if s.yRange, err = rangeOrDefault(yRange, defaultTranslateRange); err != nil {
		return nil, err
	}
	if s.zRange, err = rangeOrDefault(zRange, defaultTranslateRange); err != nil {
		return nil, err
	}
	return s, nil
}

// Sample splits off the tagged sites, translates them by one random vector,
// and recombines.
func (s *TranslateSampler) Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error) {
	selected := tagSet(tags)
	mask := make([]bool, sys.Len())
	for i, t := range sys.Tags() {
		mask[i] = selected[t]
	}
	inverse := make([]bool, len(mask))
	for i, m := range mask {
		inverse[i] = !m
	}

	main := sys.Filter(inverse)
	sub := sys.Filter(mask)
	sub.Translate(atoms.Vec3{
		s.xRange.draw(rng),
		s.yRange.draw(rng),
		s.zRange.draw(rng),
	})

	candidate := atoms.Concat(main, sub)
	candidate.SetCalculator(sys.Calculator())
	return candidate, nil
}

// Acceptability is the canonical Metropolis ratio.
func (s *TranslateSampler) Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64 {
	return canonicalAcceptability(beta, deltaEnergy)
}

// Center specifies the rotation center for rotational moves.
type Center struct {
	mode  string
	point atoms.Vec3
}

// CenterOfMass rotates about the rotating group's center of mass.
func CenterOfMass() Center { return Center{mode: "com"} }

// CenterOfPositions rotates about the rotating group's unweighted centroid.
func CenterOfPositions() Center { return Center{mode: "cop"} }

// CenterOfCell rotates about the geometric center of the periodic cell.
func CenterOfCell() Center { return Center{mode: "cou"} }

// CenterAt rotates about an explicit Cartesian point.
func CenterAt(p atoms.Vec3) Center { return Center{mode: "point", point: p} }

// resolve computes the rotation center for one moving group within sys.
func (c Center) resolve(group, sys *atoms.Atoms) atoms.Vec3 {
	switch c.mode {
	case "cop":
		return group.CenterOfPositions()
	case "cou":
		return sys.CenterOfCell()
	case "point":
		return c.point
	default:
		return group.CenterOfMass()
	}
}

var defaultAngleRange = moveRange{low: -60, high: 60}

// EulerRotateSampler applies a per-group Euler rotation (zxz convention) with
// angles drawn from the configured ranges, about a configurable center.
type EulerRotateSampler struct {
	samplerBase
	phiRange, thetaRange, psiRange moveRange
	center                         Center
}

// NewEulerRotateSampler creates a rotational move. Angle ranges are in
// degrees; a nil range defaults to [-60, 60].
func NewEulerRotateSampler(selector TagSelector, phiRange, thetaRange, psiRange []float64, center Center) (*EulerRotateSampler, error) {
	s := &EulerRotateSampler{
		samplerBase: samplerBase{
			name:        "EulerRotate",
			tagSelector: selector,
			numTags:     1,
			energy:      potentialEnergy,
		},
		center: center,
	}
	var err error
	if s.phiRange, err = rangeOrDefault(phiRange, defaultAngleRange); err != nil {
		return nil, err
	}
	if s.thetaRange, err = rangeOrDefault(thetaRange, defaultAngleRange); err != nil {
		return nil, err
	}
	if s.psiRange, err = rangeOrDefault(psiRange, defaultAngleRange); err != nil {
		return nil, err
	}
	return s, nil
}

// Sample rotates each selected group in turn and recombines.
func (s *EulerRotateSampler) Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error) {
	candidate := sys.Copy()
	for _, tag := range tags {
		mask := candidate.TagMask(tag)
		inverse := make([]bool, len(mask))
		for i, m := range mask {
			inverse[i] = !m
		}
		main := candidate.Filter(inverse)
		sub := candidate.Filter(mask)

		phi := s.phiRange.draw(rng)
		theta := s.thetaRange.draw(rng)
		psi := s.psiRange.draw(rng)
		sub.EulerRotate(phi, theta, psi, s.center.resolve(sub, candidate))

		candidate = atoms.Concat(main, sub)
	}
	candidate.SetCalculator(sys.Calculator())
	return candidate, nil
}

// Acceptability is the canonical Metropolis ratio.
func (s *EulerRotateSampler) Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64 {
	return canonicalAcceptability(beta, deltaEnergy)
}

// AxisRotateSampler rotates each selected group sequentially about the x,
// then y, then z axes by independently drawn angles.
type AxisRotateSampler struct {
	samplerBase
	xRange, yRange, zRange moveRange
	center                 Center
}

// NewAxisRotateSampler creates an axis-sequential rotational move. Angle
// ranges are in degrees; a nil range defaults to [-60, 60].
func NewAxisRotateSampler(selector TagSelector, xRange, yRange, zRange []float64, center Center) (*AxisRotateSampler, error) {
	s := &AxisRotateSampler{
		samplerBase: samplerBase{
			name:        "AxisRotate",
			tagSelector: selector,
			numTags:     1,
			energy:      potentialEnergy,
		},
		center: center,
	}
	var err error
	if s.xRange, err = rangeOrDefault(xRange, defaultAngleRange); err != nil {
		return nil, err
	}
	if s.yRange, err = rangeOrDefault(yRange, defaultAngleRange); err != nil {
		return nil, err
	}
	if s.zRange, err = rangeOrDefault(zRange, defaultAngleRange); err != nil {
		return nil, err
	}
	return s, nil
}

// Sample rotates each selected group about the three Cartesian axes in turn.
func (s *AxisRotateSampler) Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error) {
	candidate := sys.Copy()
	axes := [3]atoms.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, tag := range tags {
		mask := candidate.TagMask(tag)
		inverse := make([]bool, len(mask))
		for i, m := range mask {
			inverse[i] = !m
		}
		main := candidate.Filter(inverse)
		sub := candidate.Filter(mask)

		angles := [3]float64{
			s.xRange.draw(rng),
			s.yRange.draw(rng),
			s.zRange.draw(rng),
		}
		center := s.center.resolve(sub, candidate)
		for k, axis := range axes {
			sub.RotateAxis(axis, angles[k], center)
		}

		candidate = atoms.Concat(main, sub)
	}
	candidate.SetCalculator(sys.Calculator())
	return candidate, nil
}

// Acceptability is the canonical Metropolis ratio.
func (s *AxisRotateSampler) Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64 {
	return canonicalAcceptability(beta, deltaEnergy)
}
