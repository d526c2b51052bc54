package atoms

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteXYZFrame writes one XYZ frame: a site count line, a comment line, and
// one "symbol x y z tag" line per site. Frames can be appended back to back
// to form a trajectory.
func WriteXYZFrame(w io.Writer, a *Atoms, comment string) error {
	if _, err := fmt.Fprintf(w, "%d\n%s\n", a.Len(), comment); err != nil {
		return err
	}
	for i := range a.symbols {
		p := a.positions[i]
		if _, err := fmt.Fprintf(w, "%-3s %16.8f %16.8f %16.8f %6d\n",
			a.symbols[i], p[0], p[1], p[2], a.tags[i]); err != nil {
			return err
		}
	}
	return nil
}

// ReadXYZ parses a single XYZ frame. Site lines carry "symbol x y z" with an
// optional trailing integer tag. The cell is supplied by the caller since
// plain XYZ has no lattice record.
func ReadXYZ(r io.Reader, cell Cell) (*Atoms, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return nil, fmt.Errorf("xyz: missing site count line")
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("xyz: bad site count %q: %w", sc.Text(), err)
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("xyz: missing comment line")
	}

	symbols := make([]string, 0, count)
	positions := make([]Vec3, 0, count)
	tags := make([]int, 0, count)
	for i := 0; i < count; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("xyz: expected %d sites, got %d", count, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 {
			return nil, fmt.Errorf("xyz: site line %d has %d fields, want at least 4", i+1, len(fields))
		}
		var p Vec3
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("xyz: site line %d: %w", i+1, err)
			}
			p[k] = v
		}
		tag := 0
		if len(fields) >= 5 {
			tag, err = strconv.Atoi(fields[4])
			if err != nil {
				return nil, fmt.Errorf("xyz: site line %d tag: %w", i+1, err)
			}
		}
		symbols = append(symbols, fields[0])
		positions = append(positions, p)
		tags = append(tags, tag)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	a, err := New(symbols, positions, cell)
	if err != nil {
		return nil, err
	}
	if err := a.SetTags(tags); err != nil {
		return nil, err
	}
	return a, nil
}
