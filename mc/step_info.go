package mc

import "github.com/atomsim/atomsim/mc/atoms"

// StepInfo is the immutable snapshot of one Monte Carlo iteration. The
// engine builds a fresh value per step and hands it to every observer;
// observers must not mutate it or the configurations it references, and must
// not assume it outlives the Log call.
type StepInfo struct {
	Iteration     int
	Temperature   float64
	Beta          float64
	Sampler       Sampler
	Tags          []int
	IsAccepted    bool
	Acceptability float64

	// System is the pre-move configuration, Candidate the proposed one.
	System    *atoms.Atoms
	Candidate *atoms.Atoms

	// LatestAcceptedEnergy is the energy of the most recently accepted
	// configuration, carried forward across rejected steps. NaN until the
	// first acceptance.
	LatestAcceptedEnergy float64

	// DeltaEnergy is the sampler's energy difference for this step.
	DeltaEnergy float64
}

// SamplerName returns the reporting name of the sampler used, or "" when the
// info is zero-valued.
func (i StepInfo) SamplerName() string {
	if i.Sampler == nil {
		return ""
	}
	return i.Sampler.Name()
}
