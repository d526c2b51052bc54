package mc

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSampler(t *testing.T, name string) Sampler {
	t.Helper()
	s, err := NewTranslateSampler(NewRandomTagSelector(nil, nil), nil, nil, nil)
	require.NoError(t, err)
	s.name = name
	return s
}

func TestRandomSamplerSelector_LengthMismatch(t *testing.T) {
	a := newTestSampler(t, "A")
	_, err := NewRandomSamplerSelector([]Sampler{a}, []float64{1, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigurationMismatch))
}

func TestRandomSamplerSelector_EmptySelectFailsFast(t *testing.T) {
	selector, err := NewRandomSamplerSelector(nil, nil)
	require.NoError(t, err)
	_, err = selector.Select(rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSelection))
}

func TestRandomSamplerSelector_ZeroWeights(t *testing.T) {
	a := newTestSampler(t, "A")
	_, err := NewRandomSamplerSelector([]Sampler{a}, []float64{0})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestRandomSamplerSelector_NegativeWeight(t *testing.T) {
	a := newTestSampler(t, "A")
	_, err := NewRandomSamplerSelector([]Sampler{a}, []float64{-1})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestRandomSamplerSelector_NormalizesWeights(t *testing.T) {
	a := newTestSampler(t, "A")
	b := newTestSampler(t, "B")
	selector, err := NewRandomSamplerSelector([]Sampler{a, b}, []float64{2, 6})
	require.NoError(t, err)

	weights := selector.Weights()
	require.Len(t, weights, 2)
	assert.InDelta(t, 0.25, weights[0], 1e-12)
	assert.InDelta(t, 0.75, weights[1], 1e-12)
}

func TestRandomSamplerSelector_WeightedFrequency(t *testing.T) {
	a := newTestSampler(t, "A")
	b := newTestSampler(t, "B")
	selector, err := NewRandomSamplerSelector([]Sampler{a, b}, []float64{1, 3})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	const draws = 10000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		s, err := selector.Select(rng)
		require.NoError(t, err)
		counts[s.Name()]++
	}

	fracB := float64(counts["B"]) / draws
	if math.Abs(fracB-0.75) > 0.05 {
		t.Errorf("B drawn with frequency %.4f, want 0.75 +- 0.05", fracB)
	}
	assert.Equal(t, draws, counts["A"]+counts["B"])
}

func TestRandomSamplerSelector_AddSampler(t *testing.T) {
	a := newTestSampler(t, "A")
	selector, err := NewRandomSamplerSelector([]Sampler{a}, []float64{1})
	require.NoError(t, err)

	b := newTestSampler(t, "B")
	require.NoError(t, selector.AddSampler(b, 1))
	assert.Equal(t, 2, selector.Len())

	weights := selector.Weights()
	assert.InDelta(t, 0.5, weights[0], 1e-12)
	assert.InDelta(t, 0.5, weights[1], 1e-12)
}

func TestRandomSamplerSelector_AddSamplerRollsBackOnBadWeight(t *testing.T) {
	a := newTestSampler(t, "A")
	selector, err := NewRandomSamplerSelector([]Sampler{a}, []float64{1})
	require.NoError(t, err)

	err = selector.AddSampler(newTestSampler(t, "B"), -1)
	require.Error(t, err)
	assert.Equal(t, 1, selector.Len())

	// Selector still usable after the failed add.
	s, err := selector.Select(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, "A", s.Name())
}
