package mc

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/atomsim/atomsim/mc/atoms"
	"github.com/atomsim/atomsim/mc/units"
)

// MonteCarlo drives the Metropolis step/run loop: draw a sampler, generate a
// candidate, price it, accept or reject, and fan the result out to the
// observers. The invariant beta == 1/(kB*temperature) holds at all times.
type MonteCarlo struct {
	maxIter     int
	temperature float64
	beta        float64
	selector    SamplerSelector
	observers   []Observer
	rng         *PartitionedRNG

	// latestAcceptedEnergy carries the most recently accepted energy across
	// rejected steps. NaN until the first acceptance.
	latestAcceptedEnergy float64
}

// NewMonteCarlo creates an engine with the given iteration budget and
// temperature in Kelvin. The RNG must be supplied explicitly; it is the only
// source of randomness, which makes runs with the same seed bit-identical.
func NewMonteCarlo(maxIter int, temperature float64, selector SamplerSelector, rng *PartitionedRNG, observers ...Observer) (*MonteCarlo, error) {
	if maxIter < 0 {
		return nil, fmt.Errorf("%w: max iterations must be >= 0, got %d", ErrInvalidParameter, maxIter)
	}
	if selector == nil {
		return nil, fmt.Errorf("%w: nil sampler selector", ErrInvalidParameter)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil rng", ErrInvalidParameter)
	}
	m := &MonteCarlo{
		maxIter:              maxIter,
		selector:             selector,
		observers:            append([]Observer(nil), observers...),
		rng:                  rng,
		latestAcceptedEnergy: math.NaN(),
	}
	if err := m.SetTemperature(temperature); err != nil {
		return nil, err
	}
	return m, nil
}

// MaxIter returns the total iteration budget.
func (m *MonteCarlo) MaxIter() int { return m.maxIter }

// Temperature returns the temperature in Kelvin.
func (m *MonteCarlo) Temperature() float64 { return m.temperature }

// Beta returns the inverse temperature in 1/eV.
func (m *MonteCarlo) Beta() float64 { return m.beta }

// SetTemperature sets the temperature and recomputes beta. Non-positive
// values are rejected, never clamped.
func (m *MonteCarlo) SetTemperature(temperature float64) error {
	if !(temperature > 0) {
		return fmt.Errorf("%w: temperature must be positive, got %v", ErrInvalidParameter, temperature)
	}
	m.temperature = temperature
	m.beta = 1 / (units.KB * temperature)
	return nil
}

// SetBeta sets the inverse temperature and recomputes the temperature.
// Non-positive values are rejected, never clamped.
func (m *MonteCarlo) SetBeta(beta float64) error {
	if !(beta > 0) {
		return fmt.Errorf("%w: beta must be positive, got %v", ErrInvalidParameter, beta)
	}
	m.beta = beta
	m.temperature = 1 / (units.KB * beta)
	return nil
}

// Step executes one Metropolis iteration and returns the configuration the
// next iteration starts from: the candidate on acceptance, sys otherwise.
// Any collaborator error aborts the step.
func (m *MonteCarlo) Step(sys *atoms.Atoms, iteration int) (*atoms.Atoms, error) {
	sampler, err := m.selector.Select(m.rng.ForSubsystem(SubsystemSamplerSelect))
	if err != nil {
		return nil, err
	}
	tags, err := sampler.SelectTags(sys, m.rng.ForSubsystem(SubsystemTagSelect))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sampler.Name(), err)
	}
	candidate, err := sampler.Sample(sys, tags, m.rng.ForSubsystem(SubsystemMove))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sampler.Name(), err)
	}

	deltaEnergy := sampler.DeltaEnergy(sys, candidate)
	acceptability := sampler.Acceptability(sys, candidate, m.beta, deltaEnergy)

	// Metropolis test. Acceptability is already clamped to [0, 1]: a value
	// of 1 always accepts and 0 never does.
	u := m.rng.ForSubsystem(SubsystemAccept).Float64()
	isAccepted := u < acceptability

	if isAccepted {
		m.latestAcceptedEnergy = sampler.AfterEnergy(candidate)
	}
	logrus.Debugf("step %d: sampler=%s tags=%v dE=%.6f acc=%.4f accepted=%t",
		iteration, sampler.Name(), tags, deltaEnergy, acceptability, isAccepted)

	info := StepInfo{
		Iteration:            iteration,
		Temperature:          m.temperature,
		Beta:                 m.beta,
		Sampler:              sampler,
		Tags:                 append([]int(nil), tags...),
		IsAccepted:           isAccepted,
		Acceptability:        acceptability,
		System:               sys,
		Candidate:            candidate,
		LatestAcceptedEnergy: m.latestAcceptedEnergy,
		DeltaEnergy:          deltaEnergy,
	}
	for _, o := range m.observers {
		if err := o.Log(info); err != nil {
			return nil, err
		}
	}

	if isAccepted {
		return candidate, nil
	}
	return sys, nil
}

// Run executes iterations [currentIter, MaxIter), threading the returned
// configuration forward. Observers are initialized exactly once, only when
// currentIter is zero, so a resumed run keeps appending to its sinks.
func (m *MonteCarlo) Run(sys *atoms.Atoms, currentIter int) (*atoms.Atoms, error) {
	if currentIter == 0 {
		logrus.Infof("initializing %d observers", len(m.observers))
		for _, o := range m.observers {
			if err := o.Initialize(); err != nil {
				return nil, err
			}
		}
	}
	logrus.Infof("running Monte Carlo: iterations [%d, %d), T=%.2fK seed=%d",
		currentIter, m.maxIter, m.temperature, m.rng.Seed())

	var err error
	for iteration := currentIter; iteration < m.maxIter; iteration++ {
		sys, err = m.Step(sys, iteration)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iteration, err)
		}
	}
	return sys, nil
}
