package mc

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG provides isolated RNG streams per pipeline stage for
// deterministic simulation. Two runs constructed with the same seed draw
// identical sequences regardless of wall-clock time or global rand state.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a new partitioned RNG with the given master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// Seed returns the master seed the RNG was constructed with.
func (p *PartitionedRNG) Seed() int64 { return p.masterSeed }

// ForSubsystem returns the RNG stream for the given subsystem name.
// The stream is created lazily and derived deterministically from the master
// seed; repeated calls with the same name return the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, exists := p.subsystems[name]; exists {
		return rng
	}
	rng := rand.New(rand.NewSource(p.deriveSeed(name)))
	p.subsystems[name] = rng
	return rng
}

// deriveSeed hashes the subsystem name into the master seed so that stream
// derivation is independent of first-use order:
// subsystemSeed = masterSeed XOR hash(subsystemName).
func (p *PartitionedRNG) deriveSeed(subsystemName string) int64 {
	h := fnv.New64a()
	h.Write([]byte(subsystemName))
	return p.masterSeed ^ int64(h.Sum64())
}

// Subsystem names for the stages of one Monte Carlo step.
const (
	SubsystemSamplerSelect = "sampler_select"
	SubsystemTagSelect     = "tag_select"
	SubsystemMove          = "move"
	SubsystemAccept        = "accept"
)
