package mc

import (
	"testing"

	"github.com/atomsim/atomsim/mc/atoms"
	"github.com/atomsim/atomsim/mc/calc"
)

func testCell(l float64) atoms.Cell {
	return atoms.Cell{{l, 0, 0}, {0, l, 0}, {0, 0, l}}
}

// makeTaggedSystem builds one Ar site per tag on a line inside a cubic cell,
// with a zero-energy calculator attached.
func makeTaggedSystem(t *testing.T, tags []int) *atoms.Atoms {
	t.Helper()
	symbols := make([]string, len(tags))
	positions := make([]atoms.Vec3, len(tags))
	for i := range tags {
		symbols[i] = "Ar"
		positions[i] = atoms.Vec3{float64(i + 1), 5, 5}
	}
	sys, err := atoms.New(symbols, positions, testCell(20))
	if err != nil {
		t.Fatal(err)
	}
	if err := sys.SetTags(tags); err != nil {
		t.Fatal(err)
	}
	sys.SetCalculator(calc.Constant{Value: 0})
	return sys
}

// makeWaterSystem builds two rigid three-site water molecules tagged 1 and 2.
func makeWaterSystem(t *testing.T) *atoms.Atoms {
	t.Helper()
	symbols := []string{"O", "H", "H", "O", "H", "H"}
	positions := []atoms.Vec3{
		{5, 5, 5}, {5.96, 5, 5}, {4.76, 5.93, 5},
		{12, 12, 12}, {12.96, 12, 12}, {11.76, 12.93, 12},
	}
	sys, err := atoms.New(symbols, positions, testCell(20))
	if err != nil {
		t.Fatal(err)
	}
	if err := sys.SetTags([]int{1, 1, 1, 2, 2, 2}); err != nil {
		t.Fatal(err)
	}
	sys.SetCalculator(calc.Constant{Value: 0})
	return sys
}
