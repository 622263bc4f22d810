package graph

import "github.com/larsmk/crystalgraph/pkg/structure"

// SourceKind discriminates the provenance of a StructureGraph.
type SourceKind int

const (
	// SourceSelf means the graph stands in as its own provenance
	// (built directly from an adjacency matrix).
	SourceSelf SourceKind = iota
	// SourceFile means the graph was derived from a structure file.
	SourceFile
	// SourceCrystal means the graph was built from an in-memory crystal record.
	SourceCrystal
	// SourceMolecule means the graph was built from a parsed molecular bond graph.
	SourceMolecule
)

// String returns the kind name used in serialization and display.
func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceCrystal:
		return "crystal"
	case SourceMolecule:
		return "molecule"
	default:
		return "self"
	}
}

// Source is the provenance reference of a StructureGraph: which representation
// it was built from. It is a tagged union over the known source kinds; exactly
// the field matching Kind is populated. The core retains it for provenance and
// potential re-derivation but never interprets it.
type Source struct {
	Kind     SourceKind
	Path     string                    // SourceFile: originating file path
	Crystal  *structure.Crystal        // SourceCrystal
	Molecule *structure.MolecularGraph // SourceMolecule
}

// SelfSource returns the provenance for a graph built directly from a matrix.
func SelfSource() Source { return Source{Kind: SourceSelf} }

// FileSource returns file-derived provenance.
func FileSource(path string) Source { return Source{Kind: SourceFile, Path: path} }

// CrystalSource returns crystal-record provenance.
func CrystalSource(c *structure.Crystal) Source { return Source{Kind: SourceCrystal, Crystal: c} }

// MoleculeSource returns molecular-graph provenance.
func MoleculeSource(m *structure.MolecularGraph) Source {
	return Source{Kind: SourceMolecule, Molecule: m}
}
