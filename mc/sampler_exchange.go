package mc

import (
	"fmt"
	"math/rand"

	"github.com/atomsim/atomsim/mc/atoms"
)

// pairedTags drives the two-selector tag selection shared by the exchange
// samplers: one tag from each selector per pair, returned interleaved.
type pairedTags struct {
	tag1Selector TagSelector
	tag2Selector TagSelector
	pairs        int
}

func (p *pairedTags) selectPairs(sys *atoms.Atoms, rng *rand.Rand) ([]int, error) {
	first, err := p.tag1Selector.Select(sys, p.pairs, rng)
	if err != nil {
		return nil, err
	}
	second, err := p.tag2Selector.Select(sys, p.pairs, rng)
	if err != nil {
		return nil, err
	}
	tags := make([]int, 0, 2*p.pairs)
	for i := 0; i < p.pairs; i++ {
		tags = append(tags, first[i], second[i])
	}
	return tags, nil
}

func splitPairs(tags []int) ([][2]int, error) {
	if len(tags)%2 != 0 {
		return nil, fmt.Errorf("%w: exchange move needs tag pairs, got %d tags", ErrInvalidSelection, len(tags))
	}
	pairs := make([][2]int, 0, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		pairs = append(pairs, [2]int{tags[i], tags[i+1]})
	}
	return pairs, nil
}

// SiteExchangeSampler swaps the center-of-mass positions of two tagged
// groups: each group is rigidly translated onto the other's center.
type SiteExchangeSampler struct {
	samplerBase
	pairedTags
}

// NewSiteExchangeSampler creates a position-exchange move drawing one tag
// from each selector per step.
func NewSiteExchangeSampler(tag1Selector, tag2Selector TagSelector) *SiteExchangeSampler {
	return &SiteExchangeSampler{
		samplerBase: samplerBase{name: "SiteExchange", energy: potentialEnergy},
		pairedTags:  pairedTags{tag1Selector: tag1Selector, tag2Selector: tag2Selector, pairs: 1},
	}
}

// SelectTags returns interleaved tag pairs drawn from the two selectors.
func (s *SiteExchangeSampler) SelectTags(sys *atoms.Atoms, rng *rand.Rand) ([]int, error) {
	return s.selectPairs(sys, rng)
}

// Sample translates each group of a pair by the difference of the two group
// centers, swapping their positions in place.
func (s *SiteExchangeSampler) Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error) {
	pairs, err := splitPairs(tags)
	if err != nil {
		return nil, err
	}
	candidate := sys.Copy()
	for _, pair := range pairs {
		mask1 := candidate.TagMask(pair[0])
		mask2 := candidate.TagMask(pair[1])
		group1 := candidate.Filter(mask1)
		group2 := candidate.Filter(mask2)
		if group1.Len() == 0 || group2.Len() == 0 {
			return nil, fmt.Errorf("%w: tags %d/%d select empty groups", ErrInvalidSelection, pair[0], pair[1])
		}

		center1 := group1.CenterOfMass()
		center2 := group2.CenterOfMass()
		shift1 := center2.Sub(center1)
		shift2 := center1.Sub(center2)

		positions := candidate.Positions()
		for i := range positions {
			switch {
			case mask1[i]:
				positions[i] = positions[i].Add(shift1)
			case mask2[i]:
				positions[i] = positions[i].Add(shift2)
			}
		}
		if err := candidate.SetPositions(positions); err != nil {
			return nil, err
		}
	}
	candidate.SetCalculator(sys.Calculator())
	return candidate, nil
}

// Acceptability is the canonical Metropolis ratio.
func (s *SiteExchangeSampler) Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64 {
	return canonicalAcceptability(beta, deltaEnergy)
}

// SymbolExchangeSampler swaps chemical identity and tag labels, site by site,
// between two equal-size tagged groups.
type SymbolExchangeSampler struct {
	samplerBase
	pairedTags
}

// NewSymbolExchangeSampler creates an identity-exchange move drawing one tag
// from each selector per step.
func NewSymbolExchangeSampler(tag1Selector, tag2Selector TagSelector) *SymbolExchangeSampler {
	return &SymbolExchangeSampler{
		samplerBase: samplerBase{name: "SymbolExchange", energy: potentialEnergy},
		pairedTags:  pairedTags{tag1Selector: tag1Selector, tag2Selector: tag2Selector, pairs: 1},
	}
}

// SelectTags returns interleaved tag pairs drawn from the two selectors.
func (s *SymbolExchangeSampler) SelectTags(sys *atoms.Atoms, rng *rand.Rand) ([]int, error) {
	return s.selectPairs(sys, rng)
}

// Sample swaps symbols and tags elementwise between the two groups of each
// pair. The groups must be the same size.
func (s *SymbolExchangeSampler) Sample(sys *atoms.Atoms, tags []int, rng *rand.Rand) (*atoms.Atoms, error) {
	pairs, err := splitPairs(tags)
	if err != nil {
		return nil, err
	}
	candidate := sys.Copy()
	symbols := candidate.ChemicalSymbols()
	allTags := candidate.Tags()
	for _, pair := range pairs {
		var index1, index2 []int
		for i, t := range allTags {
			switch t {
			case pair[0]:
				index1 = append(index1, i)
			case pair[1]:
				index2 = append(index2, i)
			}
		}
		if len(index1) == 0 || len(index2) == 0 {
			return nil, fmt.Errorf("%w: tags %d/%d select empty groups", ErrInvalidSelection, pair[0], pair[1])
		}
		if len(index1) != len(index2) {
			return nil, fmt.Errorf("%w: groups for tags %d/%d differ in size (%d vs %d)",
				ErrInvalidSelection, pair[0], pair[1], len(index1), len(index2))
		}
		for k := range index1 {
			i1, i2 := index1[k], index2[k]
			symbols[i1], symbols[i2] = symbols[i2], symbols[i1]
			allTags[i1], allTags[i2] = allTags[i2], allTags[i1]
		}
	}
	if err := candidate.SetChemicalSymbols(symbols); err != nil {
		return nil, err
	}
	if err := candidate.SetTags(allTags); err != nil {
		return nil, err
	}
	candidate.SetCalculator(sys.Calculator())
	return candidate, nil
}

// Acceptability is the canonical Metropolis ratio.
func (s *SymbolExchangeSampler) Acceptability(before, after *atoms.Atoms, beta, deltaEnergy float64) float64 {
	return canonicalAcceptability(beta, deltaEnergy)
}

// SiteExchangeClusterGenerationSampler behaves like SymbolExchangeSampler but
// evaluates before/after energies on the configuration with all vacancy
// sites stripped out. Use tag1Selector for vacancy groups and tag2Selector
// for occupied groups.
type SiteExchangeClusterGenerationSampler struct {
	SymbolExchangeSampler
}

// NewSiteExchangeClusterGenerationSampler creates a vacancy-aware
// identity-exchange move.
func NewSiteExchangeClusterGenerationSampler(tag1Selector, tag2Selector TagSelector) *SiteExchangeClusterGenerationSampler {
	s := &SiteExchangeClusterGenerationSampler{
		SymbolExchangeSampler: SymbolExchangeSampler{
			samplerBase: samplerBase{name: "SiteExchangeClusterGeneration", energy: vacancyMaskedEnergy},
			pairedTags:  pairedTags{tag1Selector: tag1Selector, tag2Selector: tag2Selector, pairs: 1},
		},
	}
	return s
}
