package graph

import (
	"gonum.org/v1/gonum/mat"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

// Edge is one undirected edge of a StructureGraph, reported with From < To.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// StructureGraph bundles a weighted atomic graph with its element labels,
// cached normalized Laplacian, provenance reference, and display identifier.
// Construct via [New] or one of the pkg/pipeline entry points.
type StructureGraph struct {
	adj      *mat.SymDense
	lap      *mat.SymDense
	elements []string
	source   Source
	id       string
}

// Option configures optional fields at construction time.
type Option func(*StructureGraph)

// WithID sets the display identifier.
func WithID(id string) Option {
	return func(g *StructureGraph) { g.id = id }
}

// WithSource sets the provenance reference.
func WithSource(s Source) Option {
	return func(g *StructureGraph) { g.source = s }
}

// New builds a StructureGraph from a weighted adjacency matrix and its
// index-aligned element symbols. The Laplacian is computed here, exactly once.
//
// Errors are fatal on this path (there is no file-level fallback):
// an element-count mismatch raises INVALID_ELEMENTS immediately, and a
// degenerate matrix raises NONFINITE_LAPLACIAN. If no source is supplied,
// the graph stands in as its own provenance.
func New(adj *mat.SymDense, elements []string, opts ...Option) (*StructureGraph, error) {
	n := adj.SymmetricDim()
	if len(elements) != n {
		return nil, errors.New(errors.ErrCodeInvalidElements,
			"got %d element labels for %d graph nodes", len(elements), n)
	}

	lap, err := NormalizedLaplacian(adj)
	if err != nil {
		return nil, err
	}

	g := &StructureGraph{
		adj:      adj,
		lap:      lap,
		elements: append([]string(nil), elements...),
		source:   SelfSource(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Restore reassembles a StructureGraph from previously serialized parts
// without recomputing the Laplacian. It is intended for artifact
// deserialization (pkg/io), where the cached Laplacian must round-trip
// bit-identically.
func Restore(adj, lap *mat.SymDense, elements []string, source Source, id string) (*StructureGraph, error) {
	n := adj.SymmetricDim()
	if len(elements) != n {
		return nil, errors.New(errors.ErrCodeInvalidElements,
			"got %d element labels for %d graph nodes", len(elements), n)
	}
	if lap.SymmetricDim() != n {
		return nil, errors.New(errors.ErrCodeInvalidArtifact,
			"laplacian is %d×%d for %d graph nodes", lap.SymmetricDim(), lap.SymmetricDim(), n)
	}
	return &StructureGraph{
		adj:      adj,
		lap:      lap,
		elements: append([]string(nil), elements...),
		source:   source,
		id:       id,
	}, nil
}

// ID returns the display identifier.
func (g *StructureGraph) ID() string { return g.id }

// SetID reassigns the display identifier. This is the only mutation the
// entity supports; graph topology and weights are frozen at construction.
func (g *StructureGraph) SetID(id string) { g.id = id }

// NodeCount returns the number of atoms.
func (g *StructureGraph) NodeCount() int { return g.adj.SymmetricDim() }

// EdgeCount returns the number of undirected edges with non-zero weight.
func (g *StructureGraph) EdgeCount() int {
	n := g.adj.SymmetricDim()
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if g.adj.At(i, j) != 0 {
				count++
			}
		}
	}
	return count
}

// Weight returns the edge weight between atoms i and j (zero if no edge).
func (g *StructureGraph) Weight(i, j int) float64 { return g.adj.At(i, j) }

// Edges returns all undirected edges in deterministic order: primarily by
// source index, secondarily by destination index, with From < To.
func (g *StructureGraph) Edges() []Edge {
	n := g.adj.SymmetricDim()
	var out []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if w := g.adj.At(i, j); w != 0 {
				out = append(out, Edge{From: i, To: j, Weight: w})
			}
		}
	}
	return out
}

// Elements returns the element symbols, index-aligned with graph nodes.
// The returned slice is a copy.
func (g *StructureGraph) Elements() []string {
	return append([]string(nil), g.elements...)
}

// Adjacency returns the weighted adjacency matrix.
// Callers must treat it as read-only.
func (g *StructureGraph) Adjacency() *mat.SymDense { return g.adj }

// Laplacian returns the cached symmetric-normalized Laplacian, computed at
// construction and never recomputed. Callers must treat it as read-only.
func (g *StructureGraph) Laplacian() *mat.SymDense { return g.lap }

// Source returns the provenance reference.
func (g *StructureGraph) Source() Source { return g.source }
