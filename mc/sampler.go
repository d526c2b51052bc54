package mc

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/atomsim/atomsim/mc/atoms"
)

// Sampler is a move-generation strategy: it selects the tags a move acts on,
// produces a candidate configuration, and prices the acceptance probability
// of the transition. Samplers are stateless across calls apart from their
// configured parameter ranges; all randomness comes from the supplied rng.
//
// Exchange variants return interleaved tag pairs from SelectTags: elements
// 2k and 2k+1 form the k-th pair to swap.
type Sampler interface {
	// Name identifies the sampler in step reports.
	Name() string

	// SelectTags chooses the tags the next move acts on.
	SelectTags(sys *atoms.Atoms, rng *rand.Rand) ([]int, error)

	// Sample produces a candidate configuration from sys and the selected
	// tags. The candidate carries sys's calculator binding. Site count is
	// preserved except for insertion and removal moves.
	Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error)

	// BeforeEnergy evaluates the pre-move configuration's energy.
	BeforeEnergy(sys *atoms.Atoms) float64

	// AfterEnergy evaluates the candidate configuration's energy.
	AfterEnergy(sys *atoms.Atoms) float64

	// DeltaEnergy is AfterEnergy(after) - BeforeEnergy(before).
	DeltaEnergy(before, after *atoms.Atoms) float64

	// Acceptability returns the acceptance probability in [0, 1] for the
	// proposed transition at inverse temperature beta.
	Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64
}

// energyFunc maps a configuration to an energy. The default evaluates the
// attached calculator; cluster-generation sampling masks out vacancy sites
// first.
type energyFunc func(*atoms.Atoms) float64

func potentialEnergy(a *atoms.Atoms) float64 { return a.PotentialEnergy() }

// vacancyMaskedEnergy evaluates the energy of the configuration with all
// vacancy sites stripped out.
func vacancyMaskedEnergy(a *atoms.Atoms) float64 {
	symbols := a.ChemicalSymbols()
	mask := make([]bool, len(symbols))
	for i, s := range symbols {
		mask[i] = s != atoms.VacancySymbol
	}
	return a.Filter(mask).PotentialEnergy()
}

// samplerBase carries the pieces shared by every sampler variant: its name,
// the owned tag selector with the per-move tag count, and the energy hook.
type samplerBase struct {
	name        string
	tagSelector TagSelector
	numTags     int
	energy      energyFunc
}

func (s *samplerBase) Name() string { return s.name }

// SelectTags delegates to the owned tag selector.
func (s *samplerBase) SelectTags(sys *atoms.Atoms, rng *rand.Rand) ([]int, error) {
	return s.tagSelector.Select(sys, s.numTags, rng)
}

func (s *samplerBase) BeforeEnergy(sys *atoms.Atoms) float64 { return s.energy(sys) }

func (s *samplerBase) AfterEnergy(sys *atoms.Atoms) float64 { return s.energy(sys) }

func (s *samplerBase) DeltaEnergy(before, after *atoms.Atoms) float64 {
	return s.AfterEnergy(after) - s.BeforeEnergy(before)
}

// canonicalAcceptability is the Metropolis ratio for moves that conserve
// particle number: min(1, exp(-beta * deltaEnergy)). It saturates at exactly
// 1 for any non-positive deltaEnergy.
func canonicalAcceptability(beta, deltaEnergy float64) float64 {
	if deltaEnergy <= 0 {
		return 1
	}
	return math.Min(1, math.Exp(-beta*deltaEnergy))
}

// moveRange is a closed interval for uniform parameter draws.
type moveRange struct {
	low, high float64
}

// newMoveRange validates that r holds exactly [low, high].
func newMoveRange(r []float64) (moveRange, error) {
	if len(r) != 2 {
		return moveRange{}, fmt.Errorf("%w: range must have exactly 2 elements, got %d", ErrInvalidParameter, len(r))
	}
	return moveRange{low: r[0], high: r[1]}, nil
}

// rangeOrDefault validates r, substituting def when r is nil.
func rangeOrDefault(r []float64, def moveRange) (moveRange, error) {
	if r == nil {
		return def, nil
	}
	return newMoveRange(r)
}

func (r moveRange) draw(rng *rand.Rand) float64 {
	return r.low + rng.Float64()*(r.high-r.low)
}

// tagSet turns a tag slice into a membership set.
func tagSet(tags []int) map[int]bool {
	set := make(map[int]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

// countGroups returns the number of distinct movable groups, ignoring the
// untagged group. Grand-canonical acceptance ratios use this as the particle
// count N.
func countGroups(a *atoms.Atoms) int {
	n := 0
	for _, t := range a.DistinctTags() {
		if t != NoTag {
			n++
		}
	}
	return n
}
