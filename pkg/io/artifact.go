package io

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"

	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/graph"
	"github.com/larsmk/crystalgraph/pkg/structure"
)

// ArtifactExt is the file extension marking a serialized StructureGraph.
const ArtifactExt = ".cgr"

// artifactVersion is bumped on incompatible wire-format changes.
const artifactVersion = 1

// IsArtifact reports whether path names a serialized-graph artifact,
// judged by extension alone.
func IsArtifact(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ArtifactExt)
}

// artifact is the wire format. Matrices are flattened row-major; float64
// values survive MessagePack unchanged, which gives the bit-identical
// round-trip the cache depends on.
type artifact struct {
	Version   int            `msgpack:"version"`
	ID        string         `msgpack:"id"`
	N         int            `msgpack:"n"`
	Elements  []string       `msgpack:"elements"`
	Adjacency []float64      `msgpack:"adjacency"`
	Laplacian []float64      `msgpack:"laplacian"`
	Source    sourceRecord   `msgpack:"source"`
}

type sourceRecord struct {
	Kind     string          `msgpack:"kind"`
	Path     string          `msgpack:"path,omitempty"`
	Crystal  *crystalRecord  `msgpack:"crystal,omitempty"`
	Molecule *moleculeRecord `msgpack:"molecule,omitempty"`
}

type crystalRecord struct {
	Lattice    [9]float64  `msgpack:"lattice"`
	Fractional []float64   `msgpack:"fractional"`
	Species    []string    `msgpack:"species"`
}

type moleculeRecord struct {
	Species []string `msgpack:"species"`
	Bonds   [][2]int `msgpack:"bonds"`
}

// Marshal encodes a StructureGraph to MessagePack bytes.
func Marshal(g *graph.StructureGraph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a StructureGraph as MessagePack to w.
func Write(g *graph.StructureGraph, w io.Writer) error {
	n := g.NodeCount()
	a := artifact{
		Version:   artifactVersion,
		ID:        g.ID(),
		N:         n,
		Elements:  g.Elements(),
		Adjacency: flatten(g.Adjacency()),
		Laplacian: flatten(g.Laplacian()),
		Source:    encodeSource(g.Source()),
	}
	if err := msgpack.NewEncoder(w).Encode(a); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode artifact")
	}
	return nil
}

// WriteFile writes a StructureGraph artifact to path.
// The file is created with 0644 permissions.
func WriteFile(g *graph.StructureGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return Write(g, f)
}

// Unmarshal decodes MessagePack bytes into a StructureGraph.
func Unmarshal(data []byte) (*graph.StructureGraph, error) {
	return Read(bytes.NewReader(data))
}

// Read decodes a StructureGraph artifact from r.
// Malformed or version-skewed artifacts yield INVALID_ARTIFACT.
func Read(r io.Reader) (*graph.StructureGraph, error) {
	var a artifact
	if err := msgpack.NewDecoder(r).Decode(&a); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArtifact, err, "decode artifact")
	}
	if a.Version != artifactVersion {
		return nil, errors.New(errors.ErrCodeInvalidArtifact,
			"artifact version %d, expected %d", a.Version, artifactVersion)
	}
	if len(a.Adjacency) != a.N*a.N || len(a.Laplacian) != a.N*a.N {
		return nil, errors.New(errors.ErrCodeInvalidArtifact,
			"matrix data does not match %d nodes", a.N)
	}

	src, err := decodeSource(a.Source)
	if err != nil {
		return nil, err
	}
	return graph.Restore(
		mat.NewSymDense(a.N, a.Adjacency),
		mat.NewSymDense(a.N, a.Laplacian),
		a.Elements, src, a.ID)
}

// ReadFile reads a StructureGraph artifact from path.
func ReadFile(path string) (*graph.StructureGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "artifact %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

func flatten(m *mat.SymDense) []float64 {
	n := m.SymmetricDim()
	out := make([]float64, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}

func encodeSource(s graph.Source) sourceRecord {
	rec := sourceRecord{Kind: s.Kind.String(), Path: s.Path}
	if s.Crystal != nil {
		lat := s.Crystal.Lattice
		cr := &crystalRecord{
			Lattice: [9]float64{
				lat.A[0], lat.A[1], lat.A[2],
				lat.B[0], lat.B[1], lat.B[2],
				lat.C[0], lat.C[1], lat.C[2],
			},
			Species: s.Crystal.Species,
		}
		for _, f := range s.Crystal.Fractional {
			cr.Fractional = append(cr.Fractional, f[0], f[1], f[2])
		}
		rec.Crystal = cr
	}
	if s.Molecule != nil {
		mr := &moleculeRecord{Species: s.Molecule.Species}
		for _, b := range s.Molecule.Bonds {
			mr.Bonds = append(mr.Bonds, [2]int{b.A, b.B})
		}
		rec.Molecule = mr
	}
	return rec
}

func decodeSource(rec sourceRecord) (graph.Source, error) {
	switch rec.Kind {
	case "self", "":
		return graph.SelfSource(), nil
	case "file":
		return graph.FileSource(rec.Path), nil
	case "crystal":
		if rec.Crystal == nil {
			return graph.Source{}, errors.New(errors.ErrCodeInvalidArtifact, "crystal source without record")
		}
		c := &structure.Crystal{
			Lattice: structure.Lattice{
				A: structure.Vec{rec.Crystal.Lattice[0], rec.Crystal.Lattice[1], rec.Crystal.Lattice[2]},
				B: structure.Vec{rec.Crystal.Lattice[3], rec.Crystal.Lattice[4], rec.Crystal.Lattice[5]},
				C: structure.Vec{rec.Crystal.Lattice[6], rec.Crystal.Lattice[7], rec.Crystal.Lattice[8]},
			},
			Species: rec.Crystal.Species,
		}
		if len(rec.Crystal.Fractional)%3 != 0 {
			return graph.Source{}, errors.New(errors.ErrCodeInvalidArtifact, "ragged fractional coordinates")
		}
		for i := 0; i+2 < len(rec.Crystal.Fractional); i += 3 {
			c.Fractional = append(c.Fractional, structure.Vec{
				rec.Crystal.Fractional[i], rec.Crystal.Fractional[i+1], rec.Crystal.Fractional[i+2],
			})
		}
		return graph.CrystalSource(c), nil
	case "molecule":
		if rec.Molecule == nil {
			return graph.Source{}, errors.New(errors.ErrCodeInvalidArtifact, "molecule source without record")
		}
		m := &structure.MolecularGraph{Species: rec.Molecule.Species}
		for _, b := range rec.Molecule.Bonds {
			m.Bonds = append(m.Bonds, structure.Bond{A: b[0], B: b[1]})
		}
		return graph.MoleculeSource(m), nil
	}
	return graph.Source{}, errors.New(errors.ErrCodeInvalidArtifact, "unknown source kind %q", rec.Kind)
}
