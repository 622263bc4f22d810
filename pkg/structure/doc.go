// Package structure models atomic structures: periodic crystals, molecules,
// and the records they are parsed from.
//
// # Core Types
//
//   - [Structure]: per-atom Cartesian positions and element symbols, with an
//     optional periodic [Lattice]
//   - [Crystal]: an in-memory crystal record (lattice + fractional coordinates)
//   - [MolecularGraph]: a bond graph with element symbols but no 3D geometry
//   - [Vec]: a small 3-vector used for positions and lattice math
//
// # File Readers
//
// [ReadFile] dispatches on file extension:
//
//	.xyz             XYZ molecular geometry (no lattice)
//	.poscar, .vasp   VASP POSCAR periodic structure
//	POSCAR, CONTCAR  bare VASP filenames
//
// Parse failures carry the INVALID_STRUCTURE error code so callers can
// distinguish malformed input from I/O problems.
//
// # Periodic Images
//
// For neighbor searches under a distance cutoff, [Lattice.Translations]
// enumerates the lattice translations needed to cover a given radius. The
// repeat count per lattice vector is derived from the perpendicular width of
// the cell along that direction, so skewed cells are handled correctly.
package structure
