// Package pkg provides the core libraries for crystalgraph structure-graph
// construction.
//
// # Overview
//
// Crystalgraph turns atomic structures into weighted undirected graphs whose
// edge weights decay with interatomic distance, bundled with a normalized
// Laplacian for downstream machine-learning and spectral analysis. The pkg
// directory is organized into five main areas:
//
//  1. [structure] - Structure model and file readers (XYZ, POSCAR)
//  2. [neighbors] - Neighbor search (cutoff and Voronoi adjacency)
//  3. [graph] - The StructureGraph entity and its Laplacian
//  4. [pipeline] - Orchestration (read → neighbor search → build), caching
//  5. [io] / [render] - Artifact serialization and Graphviz presentation
//
// # Architecture
//
// The typical data flow through crystalgraph:
//
//	Structure file (XYZ / POSCAR) or in-memory record
//	         ↓
//	structure.Structure (positions, species, optional lattice)
//	         ↓
//	neighbors.Find (cutoff or Voronoi, distance decay)
//	         ↓
//	graph.StructureGraph (adjacency + normalized Laplacian)
//	         ↓
//	io artifact (.cgr) / JSON export / render diagram
//
// Supporting packages: [cache] memoizes construction results, [config] loads
// CLI defaults, [decay] names the weight functions, [errors] carries the
// error-code taxonomy, and [buildinfo] reports version metadata.
package pkg
