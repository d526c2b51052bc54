package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomsim/atomsim/mc/atoms"
)

func cubicCell(l float64) atoms.Cell {
	return atoms.Cell{{l, 0, 0}, {0, l, 0}, {0, 0, l}}
}

func makePair(t *testing.T, symbols [2]string, separation float64) *atoms.Atoms {
	t.Helper()
	a, err := atoms.New(
		[]string{symbols[0], symbols[1]},
		[]atoms.Vec3{{0, 0, 0}, {separation, 0, 0}},
		cubicCell(100),
	)
	require.NoError(t, err)
	return a
}

func TestConstant(t *testing.T) {
	a := makePair(t, [2]string{"Ar", "Ar"}, 3)
	c := Constant{Value: -1.5}
	assert.Equal(t, -1.5, c.PotentialEnergy(a))
	assert.Equal(t, -1.5, c.PotentialEnergy(nil))
}

func TestHarmonic(t *testing.T) {
	a, err := atoms.New(
		[]string{"H", "H"},
		[]atoms.Vec3{{1, 0, 0}, {0, 2, 0}},
		cubicCell(10),
	)
	require.NoError(t, err)

	h := Harmonic{K: 2, Center: atoms.Vec3{0, 0, 0}}
	// 0.5*2*(1) + 0.5*2*(4) = 5.
	assert.InDelta(t, 5.0, h.PotentialEnergy(a), 1e-12)

	// At the center the energy vanishes.
	require.NoError(t, a.SetPositions([]atoms.Vec3{{0, 0, 0}, {0, 0, 0}}))
	assert.Equal(t, 0.0, h.PotentialEnergy(a))
}

func TestLennardJones_WellDepthAtMinimum(t *testing.T) {
	lj := LennardJones{Epsilon: 0.0104, Sigma: 3.4}
	rmin := math.Pow(2, 1.0/6) * lj.Sigma
	a := makePair(t, [2]string{"Ar", "Ar"}, rmin)
	assert.InDelta(t, -lj.Epsilon, lj.PotentialEnergy(a), 1e-9)
}

func TestLennardJones_ZeroCrossingAtSigma(t *testing.T) {
	lj := LennardJones{Epsilon: 0.0104, Sigma: 3.4}
	a := makePair(t, [2]string{"Ar", "Ar"}, lj.Sigma)
	assert.InDelta(t, 0.0, lj.PotentialEnergy(a), 1e-12)
}

func TestLennardJones_RepulsiveAtShortRange(t *testing.T) {
	lj := LennardJones{Epsilon: 0.0104, Sigma: 3.4}
	a := makePair(t, [2]string{"Ar", "Ar"}, 2.0)
	assert.Greater(t, lj.PotentialEnergy(a), 0.0)
}

func TestLennardJones_CutoffDropsPair(t *testing.T) {
	lj := LennardJones{Epsilon: 0.0104, Sigma: 3.4, Cutoff: 8}
	near := makePair(t, [2]string{"Ar", "Ar"}, 5)
	far := makePair(t, [2]string{"Ar", "Ar"}, 9)
	assert.NotEqual(t, 0.0, lj.PotentialEnergy(near))
	assert.Equal(t, 0.0, lj.PotentialEnergy(far))
}

func TestLennardJones_VacancyDoesNotInteract(t *testing.T) {
	lj := LennardJones{Epsilon: 0.0104, Sigma: 3.4}
	a := makePair(t, [2]string{"Ar", atoms.VacancySymbol}, 3.8)
	assert.Equal(t, 0.0, lj.PotentialEnergy(a))
}

func TestLennardJones_MinimumImage(t *testing.T) {
	// Sites 1 Ang inside opposite faces of a 10 Ang cell are 2 Ang apart
	// through the boundary, not 8.
	lj := LennardJones{Epsilon: 1, Sigma: 1}
	a, err := atoms.New(
		[]string{"Ar", "Ar"},
		[]atoms.Vec3{{1, 5, 5}, {9, 5, 5}},
		cubicCell(10),
	)
	require.NoError(t, err)

	direct := makePair(t, [2]string{"Ar", "Ar"}, 2)
	assert.InDelta(t, lj.PotentialEnergy(direct), lj.PotentialEnergy(a), 1e-12)
}
