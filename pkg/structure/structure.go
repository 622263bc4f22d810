package structure

import (
	"github.com/larsmk/crystalgraph/pkg/errors"
)

// Structure holds per-atom Cartesian positions and element symbols, plus an
// optional periodic lattice. Positions and Species are index-aligned; that
// ordering is preserved all the way through graph construction.
type Structure struct {
	Positions []Vec    // Cartesian coordinates, one per atom
	Species   []string // element symbols, index-aligned with Positions
	Lattice   *Lattice // nil for non-periodic (molecular) structures
}

// NumAtoms returns the number of atoms.
func (s *Structure) NumAtoms() int { return len(s.Positions) }

// Periodic reports whether the structure has a lattice.
func (s *Structure) Periodic() bool { return s.Lattice != nil }

// Validate checks index alignment and non-emptiness.
func (s *Structure) Validate() error {
	if len(s.Positions) == 0 {
		return errors.New(errors.ErrCodeInvalidStructure, "structure has no atoms")
	}
	if len(s.Positions) != len(s.Species) {
		return errors.New(errors.ErrCodeInvalidStructure,
			"got %d species for %d positions", len(s.Species), len(s.Positions))
	}
	return nil
}

// Crystal is an in-memory crystal record: a lattice with fractional
// coordinates. It is the no-file-I/O counterpart of a POSCAR file.
type Crystal struct {
	Lattice    Lattice
	Fractional []Vec    // fractional coordinates, one per atom
	Species    []string // element symbols, index-aligned with Fractional
}

// Structure converts the record to Cartesian coordinates.
func (c *Crystal) Structure() (*Structure, error) {
	if len(c.Fractional) != len(c.Species) {
		return nil, errors.New(errors.ErrCodeInvalidStructure,
			"got %d species for %d sites", len(c.Species), len(c.Fractional))
	}
	lat := c.Lattice
	s := &Structure{
		Positions: make([]Vec, len(c.Fractional)),
		Species:   append([]string(nil), c.Species...),
		Lattice:   &lat,
	}
	for i, f := range c.Fractional {
		s.Positions[i] = lat.Cartesian(f)
	}
	return s, s.Validate()
}

// Bond is an undirected bond between two atom indices.
type Bond struct {
	A, B int
}

// MolecularGraph is a parsed molecular bond graph: element symbols and bonds,
// with no 3D geometry. Graphs built from it are unweighted.
type MolecularGraph struct {
	Species []string
	Bonds   []Bond
}

// NumAtoms returns the number of atoms.
func (m *MolecularGraph) NumAtoms() int { return len(m.Species) }

// Validate checks that every bond references a valid atom index.
func (m *MolecularGraph) Validate() error {
	n := len(m.Species)
	for _, b := range m.Bonds {
		if b.A < 0 || b.A >= n || b.B < 0 || b.B >= n {
			return errors.New(errors.ErrCodeInvalidStructure,
				"bond %d-%d out of range for %d atoms", b.A, b.B, n)
		}
		if b.A == b.B {
			return errors.New(errors.ErrCodeInvalidStructure, "self-bond on atom %d", b.A)
		}
	}
	return nil
}
