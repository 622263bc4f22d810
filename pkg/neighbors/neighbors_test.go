package neighbors

import (
	"math"
	"testing"

	"github.com/larsmk/crystalgraph/pkg/decay"
	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/structure"
)

func TestFindTwoAtomExample(t *testing.T) {
	// Two atoms at distance 2.0, cutoff 8.0, inverse-square decay:
	// adjacency [[0, 0.25], [0.25, 0]].
	s := &structure.Structure{
		Positions: []structure.Vec{{0, 0, 0}, {2, 0, 0}},
		Species:   []string{"H", "H"},
	}

	adj, elems, err := Find(s, Options{})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(elems) != 2 || elems[0] != "H" {
		t.Errorf("elements = %v", elems)
	}
	if got := adj.At(0, 1); got != 0.25 {
		t.Errorf("adj[0][1] = %v, want 0.25", got)
	}
	if got := adj.At(0, 0); got != 0 {
		t.Errorf("adj[0][0] = %v, want 0", got)
	}
	if adj.At(0, 1) != adj.At(1, 0) {
		t.Error("adjacency not symmetric")
	}
}

func TestSoftLimitKeepsTies(t *testing.T) {
	// Four atoms exactly equidistant from a central atom, plus one farther
	// out. With MaxNeighbors = 2, the 4-fold degenerate shell must be kept
	// whole and the farther atom dropped.
	s := &structure.Structure{
		Positions: []structure.Vec{
			{0, 0, 0},  // center
			{1, 0, 0},  // shell, d = 1
			{-1, 0, 0}, // shell, d = 1
			{0, 1, 0},  // shell, d = 1
			{0, -1, 0}, // shell, d = 1
			{0, 0, 3},  // beyond the shell, d = 3
		},
		Species: []string{"C", "H", "H", "H", "H", "O"},
	}

	adj, _, err := Find(s, Options{Cutoff: 8, MaxNeighbors: 2})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	for j := 1; j <= 4; j++ {
		if adj.At(0, j) != 1.0 {
			t.Errorf("adj[0][%d] = %v, want 1 (tied shell member dropped?)", j, adj.At(0, j))
		}
	}
	// The far atom still keeps the center from its own side (d = 3 is its
	// nearest): undirected discovery means the edge exists even though the
	// center's soft limit excluded it.
	if got, want := adj.At(0, 5), 1.0/9.0; math.Abs(got-want) > 1e-15 {
		t.Errorf("adj[0][5] = %v, want %v", got, want)
	}
}

func TestSoftLimitHardCaseIsTruncated(t *testing.T) {
	// Distinct distances: the soft limit behaves as a plain truncation.
	s := &structure.Structure{
		Positions: []structure.Vec{
			{0, 0, 0},
			{1, 0, 0},
			{2.5, 0, 0},
			{4, 0, 0},
		},
		Species: []string{"C", "H", "H", "H"},
	}

	adj, _, err := Find(s, Options{Cutoff: 8, MaxNeighbors: 1})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// Atom 0 keeps only atom 1. Atom 3 keeps only atom 2. Atom 1 keeps
	// atom 0 (d=1); atom 2 keeps atom 3 (d=1.5). No 0-2 or 0-3 edges.
	if adj.At(0, 2) != 0 || adj.At(0, 3) != 0 {
		t.Errorf("truncation failed: adj[0][2]=%v adj[0][3]=%v", adj.At(0, 2), adj.At(0, 3))
	}
	if adj.At(0, 1) == 0 {
		t.Error("nearest neighbor edge missing")
	}
}

func TestFindPeriodic(t *testing.T) {
	// CsCl-type cell: corner and body-center atoms in a cubic cell of 4.
	// Nearest unlike-atom distance is √12 ≈ 3.464 through 8 images.
	s := &structure.Structure{
		Positions: []structure.Vec{{0, 0, 0}, {2, 2, 2}},
		Species:   []string{"Cs", "Cl"},
		Lattice:   structure.Cubic(4.0),
	}

	adj, _, err := Find(s, Options{Cutoff: 3.9, MaxNeighbors: 12})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	want := 1.0 / 12.0 // inverse-square of √12
	if got := adj.At(0, 1); math.Abs(got-want) > 1e-12 {
		t.Errorf("adj[0][1] = %v, want %v", got, want)
	}
	// Self-images stay off the diagonal.
	if adj.At(0, 0) != 0 || adj.At(1, 1) != 0 {
		t.Error("diagonal must stay zero under periodicity")
	}
}

func TestFindClosestImageWins(t *testing.T) {
	// Asymmetric position: atom 1 is closer through the home cell (d=1)
	// than through the next image (d=3). The weight must be decay(1), not
	// decay(3).
	s := &structure.Structure{
		Positions: []structure.Vec{{0, 0, 0}, {1, 0, 0}},
		Species:   []string{"A", "B"},
		Lattice:   structure.Cubic(4.0),
	}

	adj, _, err := Find(s, Options{Cutoff: 3.5, MaxNeighbors: 40})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := adj.At(0, 1); got != 1.0 {
		t.Errorf("adj[0][1] = %v, want 1 (closest image)", got)
	}
}

func TestFindIsolatedAtom(t *testing.T) {
	s := &structure.Structure{
		Positions: []structure.Vec{{0, 0, 0}, {50, 0, 0}},
		Species:   []string{"H", "H"},
	}

	_, _, err := Find(s, Options{Cutoff: 8})
	if err == nil {
		t.Fatal("isolated atom should fail neighbor search")
	}
	if !errors.Is(err, errors.ErrCodeNeighborSearch) {
		t.Errorf("error code = %q, want NEIGHBOR_SEARCH", errors.GetCode(err))
	}
}

func TestFindCoincidentAtoms(t *testing.T) {
	s := &structure.Structure{
		Positions: []structure.Vec{{0, 0, 0}, {0, 0, 0}},
		Species:   []string{"H", "H"},
	}
	if _, _, err := Find(s, Options{}); !errors.Is(err, errors.ErrCodeNeighborSearch) {
		t.Errorf("coincident atoms: code = %q, want NEIGHBOR_SEARCH", errors.GetCode(err))
	}
}

func TestFindOptionValidation(t *testing.T) {
	s := &structure.Structure{
		Positions: []structure.Vec{{0, 0, 0}, {1, 0, 0}},
		Species:   []string{"H", "H"},
	}

	if _, _, err := Find(s, Options{Cutoff: -1}); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Error("negative cutoff should be rejected")
	}
	if _, _, err := Find(s, Options{MaxNeighbors: -3}); !errors.Is(err, errors.ErrCodeInvalidOptions) {
		t.Error("negative max neighbors should be rejected")
	}
}

func TestFindCustomDecay(t *testing.T) {
	s := &structure.Structure{
		Positions: []structure.Vec{{0, 0, 0}, {2, 0, 0}},
		Species:   []string{"H", "H"},
	}
	adj, _, err := Find(s, Options{Decay: decay.Inverse})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got := adj.At(0, 1); got != 0.5 {
		t.Errorf("adj[0][1] = %v, want 0.5 under 1/d", got)
	}
}
