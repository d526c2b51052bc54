package mc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atomsim/atomsim/mc/units"
)

func TestThermalDeBroglie_GoldenValue(t *testing.T) {
	// For M = 1 g/mol at 300 K the wavelength is 1.0079 Angstrom.
	beta := 1 / (units.KB * 300)
	lambda := ThermalDeBroglie(1.0, beta)
	assert.InDelta(t, 1.0079, lambda, 1e-3)
}

func TestThermalDeBroglie_DecreasesWithMass(t *testing.T) {
	beta := 1 / (units.KB * 300)
	prev := ThermalDeBroglie(1.0, beta)
	for _, mw := range []float64{4, 18, 40, 200} {
		lambda := ThermalDeBroglie(mw, beta)
		assert.Less(t, lambda, prev, "lambda not decreasing at M=%v", mw)
		prev = lambda
	}
}

func TestThermalDeBroglie_DecreasesWithTemperature(t *testing.T) {
	cold := ThermalDeBroglie(18, 1/(units.KB*100))
	hot := ThermalDeBroglie(18, 1/(units.KB*1000))
	assert.Greater(t, cold, hot)
}
