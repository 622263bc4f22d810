// Package neighbors derives weighted adjacency matrices from 3D atomic
// coordinates.
//
// # Cutoff Mode
//
// The default mode enumerates, for each atom, every atom within a cutoff
// radius (including periodic images when the structure has a lattice), sorts
// the candidates by distance, and keeps the nearest MaxNeighbors. The limit is
// a soft floor: candidates tied (within a small relative tolerance) with the
// MaxNeighbors-th distance are all retained, so symmetric coordination shells
// are never split by an arbitrary truncation. Each kept pair contributes an
// undirected edge weighted by the configured decay function; when the same
// pair is reachable through several periodic images, the closest image wins.
//
// # Voronoi Mode
//
// With Options.Voronoi set, neighbors are the Voronoi-adjacent atoms: pairs
// whose cells share a face in the Voronoi tessellation of the atomic
// positions. Adjacency is decided exactly per pair by clipping a bounded
// polygon on the perpendicular-bisector plane against the half-planes of all
// other sites; a surviving polygon of positive area is a shared face. Cutoff
// and MaxNeighbors are ignored in this mode; edge weights still come from the
// decay function applied to the pair distance.
//
// # Failure
//
// An atom with no neighbors (or two coincident atoms, whose distance would
// blow up any decay function) is reported as a NEIGHBOR_SEARCH error rather
// than silently producing a graph the Laplacian step must reject.
package neighbors
