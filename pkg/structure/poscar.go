package structure

import (
	"strconv"
	"strings"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

// ParsePOSCAR parses VASP 5 POSCAR data: a title line, a scaling factor,
// three lattice vectors, element symbols, per-element counts, an optional
// "Selective dynamics" line, a coordinate mode ("Direct" or "Cartesian"),
// and one coordinate line per atom.
//
// VASP 4 files (no element-symbol line) are rejected, since the element
// labels are required for graph construction.
func ParsePOSCAR(data []byte) (*Structure, error) {
	lines := splitLines(string(data))
	if len(lines) < 8 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "poscar: truncated header")
	}

	scale, err := strconv.ParseFloat(strings.TrimSpace(lines[1]), 64)
	if err != nil || scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "poscar: bad scaling factor %q", lines[1])
	}

	var lat Lattice
	rows := []*Vec{&lat.A, &lat.B, &lat.C}
	for r := 0; r < 3; r++ {
		fields := strings.Fields(lines[2+r])
		if len(fields) < 3 {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "poscar: short lattice row %d", r+1)
		}
		for k := 0; k < 3; k++ {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "poscar: lattice row %d", r+1)
			}
			rows[r][k] = v * scale
		}
	}

	symbols := strings.Fields(lines[5])
	if len(symbols) == 0 || isAllInts(symbols) {
		return nil, errors.New(errors.ErrCodeInvalidStructure,
			"poscar: element symbols line missing (VASP 4 format is not supported)")
	}
	counts := strings.Fields(lines[6])
	if len(counts) != len(symbols) {
		return nil, errors.New(errors.ErrCodeInvalidStructure,
			"poscar: %d counts for %d element symbols", len(counts), len(symbols))
	}

	var species []string
	for i, c := range counts {
		n, err := strconv.Atoi(c)
		if err != nil || n <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "poscar: bad atom count %q", c)
		}
		for j := 0; j < n; j++ {
			species = append(species, symbols[i])
		}
	}

	line := 7
	if len(lines) > line && strings.HasPrefix(strings.ToLower(strings.TrimSpace(lines[line])), "s") {
		line++ // selective dynamics
	}
	if len(lines) <= line {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "poscar: missing coordinate mode")
	}
	mode := strings.ToLower(strings.TrimSpace(lines[line]))
	direct := strings.HasPrefix(mode, "d")
	if !direct && !strings.HasPrefix(mode, "c") && !strings.HasPrefix(mode, "k") {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "poscar: unknown coordinate mode %q", lines[line])
	}
	line++

	if len(lines) < line+len(species) {
		return nil, errors.New(errors.ErrCodeInvalidStructure,
			"poscar: expected %d coordinate lines, got %d", len(species), len(lines)-line)
	}

	s := &Structure{
		Positions: make([]Vec, len(species)),
		Species:   species,
		Lattice:   &lat,
	}
	for i := range species {
		fields := strings.Fields(lines[line+i])
		if len(fields) < 3 {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "poscar: short coordinate line %d", line+i+1)
		}
		var v Vec
		for k := 0; k < 3; k++ {
			x, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err,
					"poscar: coordinate line %d", line+i+1)
			}
			v[k] = x
		}
		if direct {
			s.Positions[i] = lat.Cartesian(v)
		} else {
			s.Positions[i] = v.Scale(scale)
		}
	}
	return s, s.Validate()
}

func isAllInts(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}
