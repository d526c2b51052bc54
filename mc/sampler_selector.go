package mc

import (
	"fmt"
	"math/rand"
)

// SamplerSelector draws one sampler per step.
type SamplerSelector interface {
	Select(rng *rand.Rand) (Sampler, error)
}

// RandomSamplerSelector draws samplers with probability proportional to
// their configured weights. Weights need not be pre-normalized.
type RandomSamplerSelector struct {
	samplers   []Sampler
	weights    []float64 // raw weights as configured
	cumulative []float64 // normalized cumulative sums, rebuilt on change
}

// NewRandomSamplerSelector creates a weighted selector. The sampler and
// weight lists must have equal length; weights must be non-negative and not
// all zero.
func NewRandomSamplerSelector(samplers []Sampler, weights []float64) (*RandomSamplerSelector, error) {
	if len(samplers) != len(weights) {
		return nil, fmt.Errorf("%w: %d samplers but %d weights", ErrConfigurationMismatch, len(samplers), len(weights))
	}
	s := &RandomSamplerSelector{
		samplers: append([]Sampler(nil), samplers...),
		weights:  append([]float64(nil), weights...),
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddSampler appends a sampler with its weight, keeping both lists in step,
// and renormalizes.
func (s *RandomSamplerSelector) AddSampler(sampler Sampler, weight float64) error {
	if sampler == nil {
		return fmt.Errorf("%w: nil sampler", ErrInvalidParameter)
	}
	s.samplers = append(s.samplers, sampler)
	s.weights = append(s.weights, weight)
	if err := s.normalize(); err != nil {
		// Roll back so the paired lists stay consistent with the last valid
		// configuration.
		s.samplers = s.samplers[:len(s.samplers)-1]
		s.weights = s.weights[:len(s.weights)-1]
		return err
	}
	return nil
}

// Len returns the number of registered samplers.
func (s *RandomSamplerSelector) Len() int { return len(s.samplers) }

// Weights returns the normalized selection probabilities.
func (s *RandomSamplerSelector) Weights() []float64 {
	out := make([]float64, len(s.cumulative))
	prev := 0.0
	for i, c := range s.cumulative {
		out[i] = c - prev
		prev = c
	}
	return out
}

// Select draws one sampler proportionally to the normalized weights. It
// fails fast when no samplers are registered.
func (s *RandomSamplerSelector) Select(rng *rand.Rand) (Sampler, error) {
	if len(s.samplers) == 0 {
		return nil, fmt.Errorf("%w: no samplers registered", ErrInvalidSelection)
	}
	u := rng.Float64()
	for i, c := range s.cumulative {
		if u < c {
			return s.samplers[i], nil
		}
	}
	// Guard against accumulated floating-point shortfall at u close to 1.
	return s.samplers[len(s.samplers)-1], nil
}

func (s *RandomSamplerSelector) normalize() error {
	if len(s.weights) == 0 {
		s.cumulative = nil
		return nil
	}
	var total float64
	for _, w := range s.weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %v", ErrInvalidParameter, w)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: weights sum to zero", ErrInvalidParameter)
	}
	s.cumulative = make([]float64, len(s.weights))
	acc := 0.0
	for i, w := range s.weights {
		acc += w / total
		s.cumulative[i] = acc
	}
	return nil
}
