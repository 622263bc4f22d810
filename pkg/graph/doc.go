// Package graph defines the StructureGraph entity: a weighted, undirected
// graph over the atoms of a structure, with element labels and a cached
// normalized Laplacian.
//
// # Architecture
//
// The package sits at the center of the construction pipeline:
//
//   - pkg/neighbors produces a weighted adjacency matrix from 3D coordinates
//   - [New] validates it, computes the Laplacian once, and freezes the result
//   - pkg/pipeline provides the construction entry points
//   - pkg/io serializes the full entity for caching and reuse
//
// # Immutability
//
// A [StructureGraph] is immutable in topology and weights after construction:
// there is no edge-mutation API, and the Laplacian is computed exactly once.
// The only mutable attribute is the display identifier, reassigned via
// [StructureGraph.SetID] (for example when a cached graph is reloaded under a
// different name).
//
// # Laplacian
//
// [NormalizedLaplacian] computes L = I − D^(−1/2) A D^(−1/2) and guarantees
// the result contains no NaN or Inf entries. A zero-degree atom (isolated
// node, or a block of atoms mutually unreachable within the cutoff) makes
// D^(−1/2) undefined; the builder rejects such inputs with a
// NONFINITE_LAPLACIAN error rather than returning a corrupted matrix. The
// error text points at the usual fix: enlarge the cutoff radius or inspect
// the source structure.
//
// # Edge Ordering
//
// [StructureGraph.Edges] returns edges in deterministic order, primarily by
// source index and secondarily by destination index, so presentation
// collaborators get stable output.
package graph
