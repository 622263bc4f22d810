package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/larsmk/crystalgraph/pkg/decay"
	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/structure"
)

const (
	// DefaultCutoff is the default neighbor cutoff radius in length units.
	DefaultCutoff = 8.0

	// DefaultMaxNeighbors is the default soft neighbor limit.
	DefaultMaxNeighbors = 12

	// distTieRel is the relative tolerance under which two candidate
	// distances count as tied at the soft-limit boundary. Exact floating
	// equality is unreliable for symmetry-equivalent sites, while genuinely
	// distinct coordination shells differ by far more than one part in 10⁶.
	distTieRel = 1e-6

	// minSeparation is the smallest interatomic distance treated as
	// physical. Anything closer is reported as coincident atoms.
	minSeparation = 1e-8
)

// Options configures a neighbor search.
type Options struct {
	// Cutoff is the neighbor cutoff radius (> 0). Ignored in Voronoi mode.
	Cutoff float64

	// MaxNeighbors is the soft neighbor limit (>= 1); candidates tied with
	// the MaxNeighbors-th distance are all kept. Ignored in Voronoi mode.
	MaxNeighbors int

	// Decay maps distance to edge weight. Defaults to inverse-square.
	Decay decay.Func

	// Voronoi selects Voronoi-tessellation adjacency instead of the cutoff.
	Voronoi bool
}

func (o *Options) setDefaults() {
	if o.Cutoff == 0 {
		o.Cutoff = DefaultCutoff
	}
	if o.MaxNeighbors == 0 {
		o.MaxNeighbors = DefaultMaxNeighbors
	}
	if o.Decay == nil {
		o.Decay = decay.Default()
	}
}

func (o *Options) validate() error {
	if o.Voronoi {
		return nil
	}
	if o.Cutoff <= 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "cutoff radius must be positive, got %v", o.Cutoff)
	}
	if o.MaxNeighbors < 1 {
		return errors.New(errors.ErrCodeInvalidOptions, "max neighbors must be at least 1, got %d", o.MaxNeighbors)
	}
	return nil
}

// Find derives a weighted adjacency matrix and the node-aligned element
// symbols from an atomic structure. The matrix is symmetric with a zero
// diagonal and non-negative entries; row/column indices follow the input
// atom ordering.
func Find(s *structure.Structure, opts Options) (*mat.SymDense, []string, error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}

	var adj *mat.SymDense
	var err error
	if opts.Voronoi {
		adj, err = voronoiAdjacency(s, opts.Decay)
	} else {
		adj, err = cutoffAdjacency(s, opts)
	}
	if err != nil {
		return nil, nil, err
	}
	return adj, append([]string(nil), s.Species...), nil
}

// candidate is one neighbor candidate of a given atom: a target atom index
// and the distance through a particular periodic image.
type candidate struct {
	j    int
	dist float64
}

// cutoffAdjacency implements cutoff-based neighbor finding with the soft
// MaxNeighbors limit.
func cutoffAdjacency(s *structure.Structure, opts Options) (*mat.SymDense, error) {
	n := s.NumAtoms()
	translations := []structure.Vec{{}}
	if s.Periodic() {
		translations = s.Lattice.Translations(opts.Cutoff)
	}

	adj := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		cands, err := gatherCandidates(s, i, translations, opts.Cutoff)
		if err != nil {
			return nil, err
		}
		if len(cands) == 0 {
			return nil, errors.New(errors.ErrCodeNeighborSearch,
				"atom %d (%s) has no neighbors within cutoff %v; enlarge the cutoff radius",
				i, s.Species[i], opts.Cutoff)
		}

		for _, c := range keepSoftLimit(cands, opts.MaxNeighbors) {
			w := opts.Decay(c.dist)
			// Closest image wins when a pair is reachable several ways,
			// and edges are undirected regardless of which side found them.
			if w > adj.At(i, c.j) {
				adj.SetSym(i, c.j, w)
			}
		}
	}
	return adj, nil
}

// gatherCandidates enumerates atoms (and periodic images) within cutoff of
// atom i. Self-images are skipped so the diagonal stays zero; coincident
// atoms are a hard error.
func gatherCandidates(s *structure.Structure, i int, translations []structure.Vec, cutoff float64) ([]candidate, error) {
	var out []candidate
	for j := 0; j < s.NumAtoms(); j++ {
		for _, t := range translations {
			if i == j && t == (structure.Vec{}) {
				continue
			}
			d := s.Positions[j].Add(t).Dist(s.Positions[i])
			if d > cutoff {
				continue
			}
			if d < minSeparation {
				return nil, errors.New(errors.ErrCodeNeighborSearch,
					"atoms %d and %d coincide (distance %v)", i, j, d)
			}
			if i == j {
				continue // zero diagonal: an atom never bonds its own images
			}
			out = append(out, candidate{j: j, dist: d})
		}
	}
	return out, nil
}

// keepSoftLimit sorts candidates by distance and keeps the nearest k, plus
// every candidate tied with the k-th distance. The sort breaks distance ties
// by atom index so the scan is deterministic.
func keepSoftLimit(cands []candidate, k int) []candidate {
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].j < cands[b].j
	})
	if len(cands) <= k {
		return cands
	}

	bound := cands[k-1].dist * (1 + distTieRel)
	end := k
	for end < len(cands) && cands[end].dist <= bound {
		end++
	}
	return cands[:end]
}
