// Package atoms provides the mutable atomic configuration the Monte Carlo
// engine operates on: chemical symbols, Cartesian positions, integer group
// tags, a periodic cell and an attached energy calculator.
//
// Samplers work on copies; an Atoms value handed to the engine is treated as
// immutable between steps.
package atoms

import (
	"fmt"
	"sort"
)

// VacancySymbol marks a placeholder site with zero mass. Vacancy sites take
// part in exchange moves but are stripped before energy evaluation by
// cluster-generation sampling.
const VacancySymbol = "X"

// Calculator evaluates the potential energy of a configuration.
// Implementations live in the calc sub-package.
type Calculator interface {
	PotentialEnergy(a *Atoms) float64
}

// Atoms is a set of sites with positions, symbols and tags inside a periodic
// cell. The zero tag means the site belongs to no movable group.
type Atoms struct {
	symbols   []string
	positions []Vec3
	tags      []int
	cell      Cell
	calc      Calculator
}

// New creates an Atoms value with all tags zeroed.
func New(symbols []string, positions []Vec3, cell Cell) (*Atoms, error) {
	if len(symbols) != len(positions) {
		return nil, fmt.Errorf("atoms: %d symbols but %d positions", len(symbols), len(positions))
	}
	return &Atoms{
		symbols:   append([]string(nil), symbols...),
		positions: append([]Vec3(nil), positions...),
		tags:      make([]int, len(symbols)),
		cell:      cell,
	}, nil
}

// Len returns the number of sites.
func (a *Atoms) Len() int { return len(a.symbols) }

// Copy returns a deep copy sharing the calculator reference.
func (a *Atoms) Copy() *Atoms {
	return &Atoms{
		symbols:   append([]string(nil), a.symbols...),
		positions: append([]Vec3(nil), a.positions...),
		tags:      append([]int(nil), a.tags...),
		cell:      a.cell,
		calc:      a.calc,
	}
}

// Positions returns a copy of the site positions.
func (a *Atoms) Positions() []Vec3 {
	return append([]Vec3(nil), a.positions...)
}

// SetPositions replaces all site positions.
func (a *Atoms) SetPositions(p []Vec3) error {
	if len(p) != len(a.positions) {
		return fmt.Errorf("atoms: got %d positions for %d sites", len(p), len(a.positions))
	}
	copy(a.positions, p)
	return nil
}

// Tags returns a copy of the site tags.
func (a *Atoms) Tags() []int {
	return append([]int(nil), a.tags...)
}

// SetTags replaces all site tags.
func (a *Atoms) SetTags(tags []int) error {
	if len(tags) != len(a.tags) {
		return fmt.Errorf("atoms: got %d tags for %d sites", len(tags), len(a.tags))
	}
	copy(a.tags, tags)
	return nil
}

// SetUniformTag assigns the same tag to every site.
func (a *Atoms) SetUniformTag(tag int) {
	for i := range a.tags {
		a.tags[i] = tag
	}
}

// ChemicalSymbols returns a copy of the site symbols.
func (a *Atoms) ChemicalSymbols() []string {
	return append([]string(nil), a.symbols...)
}

// SetChemicalSymbols replaces all site symbols.
func (a *Atoms) SetChemicalSymbols(symbols []string) error {
	if len(symbols) != len(a.symbols) {
		return fmt.Errorf("atoms: got %d symbols for %d sites", len(symbols), len(a.symbols))
	}
	copy(a.symbols, symbols)
	return nil
}

// Cell returns the periodic cell.
func (a *Atoms) Cell() Cell { return a.cell }

// Volume returns the cell volume in cubic Angstrom.
func (a *Atoms) Volume() float64 { return a.cell.Volume() }

// Calculator returns the attached energy calculator, or nil.
func (a *Atoms) Calculator() Calculator { return a.calc }

// SetCalculator attaches an energy calculator.
func (a *Atoms) SetCalculator(c Calculator) { a.calc = c }

// PotentialEnergy evaluates the attached calculator. It panics when no
// calculator is attached; samplers are required to copy the calculator
// binding forward onto every candidate they produce.
func (a *Atoms) PotentialEnergy() float64 {
	if a.calc == nil {
		panic("atoms: no calculator attached")
	}
	return a.calc.PotentialEnergy(a)
}

// Masses returns the per-site masses in g/mol. Vacancy sites have zero mass.
func (a *Atoms) Masses() []float64 {
	masses := make([]float64, len(a.symbols))
	for i, s := range a.symbols {
		masses[i] = MassOf(s)
	}
	return masses
}

// TotalMass returns the summed site masses in g/mol.
func (a *Atoms) TotalMass() float64 {
	var total float64
	for _, m := range a.Masses() {
		total += m
	}
	return total
}

// CenterOfMass returns the mass-weighted center. When the total mass is zero
// (e.g. a group of vacancy sites) it falls back to the centroid.
func (a *Atoms) CenterOfMass() Vec3 {
	masses := a.Masses()
	var total float64
	var com Vec3
	for i, p := range a.positions {
		com = com.Add(p.Scale(masses[i]))
		total += masses[i]
	}
	if total == 0 {
		return a.CenterOfPositions()
	}
	return com.Scale(1 / total)
}

// CenterOfPositions returns the unweighted centroid of all sites.
func (a *Atoms) CenterOfPositions() Vec3 {
	var c Vec3
	if len(a.positions) == 0 {
		return c
	}
	for _, p := range a.positions {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(a.positions)))
}

// CenterOfCell returns the geometric center of the periodic cell.
func (a *Atoms) CenterOfCell() Vec3 {
	return a.cell.CartesianFromFractional(Vec3{0.5, 0.5, 0.5})
}

// Translate shifts every site by v.
func (a *Atoms) Translate(v Vec3) {
	for i := range a.positions {
		a.positions[i] = a.positions[i].Add(v)
	}
}

// Filter returns a new Atoms holding the sites where mask is true. The cell
// and calculator binding are carried over. It panics when the mask length
// does not match the site count.
func (a *Atoms) Filter(mask []bool) *Atoms {
	if len(mask) != len(a.symbols) {
		panic(fmt.Sprintf("atoms: mask length %d for %d sites", len(mask), len(a.symbols)))
	}
	out := &Atoms{cell: a.cell, calc: a.calc}
	for i, keep := range mask {
		if !keep {
			continue
		}
		out.symbols = append(out.symbols, a.symbols[i])
		out.positions = append(out.positions, a.positions[i])
		out.tags = append(out.tags, a.tags[i])
	}
	return out
}

// TagMask returns a mask selecting the sites carrying the given tag.
func (a *Atoms) TagMask(tag int) []bool {
	mask := make([]bool, len(a.tags))
	for i, t := range a.tags {
		mask[i] = t == tag
	}
	return mask
}

// DistinctTags returns the sorted set of tags present in the configuration.
func (a *Atoms) DistinctTags() []int {
	seen := make(map[int]bool, len(a.tags))
	var tags []int
	for _, t := range a.tags {
		if !seen[t] {
			seen[t] = true
			tags = append(tags, t)
		}
	}
	sort.Ints(tags)
	return tags
}

// Concat returns a new Atoms holding a's sites followed by b's. The result
// carries a's cell and calculator binding.
func Concat(a, b *Atoms) *Atoms {
	out := a.Copy()
	out.symbols = append(out.symbols, b.symbols...)
	out.positions = append(out.positions, b.positions...)
	out.tags = append(out.tags, b.tags...)
	return out
}
