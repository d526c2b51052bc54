// Package mc provides the Metropolis Monte Carlo decision engine for atomic
// configurations.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - sampler.go: the move-generation strategy contract and its shared base
//   - monte_carlo.go: the step/run loop and the Metropolis acceptance test
//   - rng.go: partitioned, seedable randomness that makes runs reproducible
//
// # Architecture
//
// The mc package defines the strategy interfaces and the engine; collaborators
// live in sub-packages:
//   - mc/atoms/: the atomic configuration and its geometric operations
//   - mc/calc/: potential-energy calculators attached to configurations
//   - mc/units/: exact physical constants
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - TagSelector: choose which site groups a move acts on
//   - Sampler: generate a candidate configuration and price its acceptance
//   - SamplerSelector: draw one sampler per step, weighted
//   - Observer: receive one immutable StepInfo per step
//
// One step draws a sampler, selects tags, generates a candidate, computes the
// energy difference and acceptance probability, applies the Metropolis test,
// notifies observers, and hands the surviving configuration to the next
// iteration. All randomness flows through a PartitionedRNG so that two runs
// with the same seed are bit-identical.
package mc
