package mc

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/atomsim/atomsim/mc/atoms"
)

// NoTag is the tag carried by sites that belong to no movable group.
// Grand-canonical particle counts ignore it.
const NoTag = 0

// TagSelector chooses numTags site-group tags from a configuration. The
// returned slice has length exactly numTags and its elements are mutually
// distinct. Randomness is drawn only from the supplied rng.
type TagSelector interface {
	Select(sys *atoms.Atoms, numTags int, rng *rand.Rand) ([]int, error)
}

// RandomTagSelector draws tags without replacement from the configuration's
// existing distinct tags, or from an explicit allow-list when one is set.
type RandomTagSelector struct {
	targetTags []int
	ignoreTags map[int]bool
}

// NewRandomTagSelector creates a selector drawing from targetTags, or from
// the configuration's own tags when targetTags is nil. Tags in ignoreTags are
// never returned.
func NewRandomTagSelector(targetTags, ignoreTags []int) *RandomTagSelector {
	ignore := make(map[int]bool, len(ignoreTags))
	for _, t := range ignoreTags {
		ignore[t] = true
	}
	return &RandomTagSelector{
		targetTags: append([]int(nil), targetTags...),
		ignoreTags: ignore,
	}
}

// Select draws numTags distinct eligible tags without replacement. It fails
// with ErrInvalidSelection when fewer eligible tags exist than requested.
func (s *RandomTagSelector) Select(sys *atoms.Atoms, numTags int, rng *rand.Rand) ([]int, error) {
	pool := s.targetTags
	if pool == nil {
		pool = sys.DistinctTags()
	}

	eligible := make([]int, 0, len(pool))
	seen := make(map[int]bool, len(pool))
	for _, t := range pool {
		if s.ignoreTags[t] || seen[t] {
			continue
		}
		seen[t] = true
		eligible = append(eligible, t)
	}
	if len(eligible) < numTags {
		return nil, fmt.Errorf("%w: %d eligible tags, need %d", ErrInvalidSelection, len(eligible), numTags)
	}

	// Sorted before drawing so that map iteration order never leaks into the
	// random sequence.
	sort.Ints(eligible)
	selected := make([]int, numTags)
	for i := 0; i < numTags; i++ {
		j := i + rng.Intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
		selected[i] = eligible[i]
	}
	return selected, nil
}

// NotExistTagSelector synthesizes previously-unused tags by scanning upward
// from zero, skipping tags present in the configuration or in the ignore
// list. It is used by insertion moves that need fresh group labels.
type NotExistTagSelector struct {
	ignoreTags map[int]bool
}

// NewNotExistTagSelector creates a selector that never returns a tag from
// ignoreTags.
func NewNotExistTagSelector(ignoreTags []int) *NotExistTagSelector {
	ignore := make(map[int]bool, len(ignoreTags))
	for _, t := range ignoreTags {
		ignore[t] = true
	}
	return &NotExistTagSelector{ignoreTags: ignore}
}

// Select returns numTags mutually distinct non-negative tags absent from the
// configuration at call time. It draws no randomness.
func (s *NotExistTagSelector) Select(sys *atoms.Atoms, numTags int, rng *rand.Rand) ([]int, error) {
	taken := make(map[int]bool)
	for _, t := range sys.Tags() {
		taken[t] = true
	}
	for t := range s.ignoreTags {
		taken[t] = true
	}

	selected := make([]int, 0, numTags)
	for tag := 0; len(selected) < numTags; tag++ {
		if taken[tag] {
			continue
		}
		taken[tag] = true
		selected = append(selected, tag)
	}
	return selected, nil
}
