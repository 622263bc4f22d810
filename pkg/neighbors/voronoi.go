package neighbors

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/larsmk/crystalgraph/pkg/decay"
	"github.com/larsmk/crystalgraph/pkg/errors"
	"github.com/larsmk/crystalgraph/pkg/structure"
)

const (
	// voronoiSearchRadius bounds the candidate search for Voronoi cells, in
	// length units. Atomic Voronoi cells are a few Å across, so sites beyond
	// this radius cannot contribute a face.
	voronoiSearchRadius = 13.0

	// faceAreaTol is the minimum in-plane polygon area (relative to the
	// bounding square) for a bisector to count as a real shared face.
	// Degenerate tangencies clip down to slivers below this.
	faceAreaTol = 1e-12
)

// site is one point of the tessellation: an atom, possibly shifted by a
// lattice translation. index refers to the original atom.
type site struct {
	index int
	pos   structure.Vec
}

// voronoiAdjacency builds adjacency from the Voronoi tessellation of the
// atomic positions: atoms i and j are neighbors iff their cells share a face.
//
// For each candidate pair the shared face is found directly: start from a
// large square on the perpendicular-bisector plane and clip it against the
// half-plane of every other site. A surviving polygon of positive area is a
// face of both cells.
func voronoiAdjacency(s *structure.Structure, decayFn decay.Func) (*mat.SymDense, error) {
	n := s.NumAtoms()
	if n < 2 && !s.Periodic() {
		return nil, errors.New(errors.ErrCodeNeighborSearch,
			"voronoi tessellation needs at least two atoms, got %d", n)
	}

	sites := tessellationSites(s)
	adj := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		pi := s.Positions[i]
		found := false
		for _, cand := range sites {
			d := cand.pos.Dist(pi)
			if d > voronoiSearchRadius {
				continue
			}
			if d < minSeparation {
				if cand.index != i {
					return nil, errors.New(errors.ErrCodeNeighborSearch,
						"atoms %d and %d coincide (distance %v)", i, cand.index, d)
				}
				continue // the atom itself
			}
			if cand.index == i {
				continue // self-image faces cannot appear on the zero diagonal
			}
			if !sharesFace(pi, cand.pos, sites) {
				continue
			}
			found = true
			if w := decayFn(d); w > adj.At(i, cand.index) {
				adj.SetSym(i, cand.index, w)
			}
		}
		if !found {
			return nil, errors.New(errors.ErrCodeNeighborSearch,
				"atom %d (%s) has no voronoi neighbors; inspect the source structure", i, s.Species[i])
		}
	}
	return adj, nil
}

// tessellationSites lists every site that can shape a cell of an atom in the
// home cell: all atoms, plus their periodic images within the search radius.
func tessellationSites(s *structure.Structure) []site {
	translations := []structure.Vec{{}}
	if s.Periodic() {
		translations = s.Lattice.Translations(voronoiSearchRadius)
	}
	sites := make([]site, 0, len(translations)*s.NumAtoms())
	for j := 0; j < s.NumAtoms(); j++ {
		for _, t := range translations {
			sites = append(sites, site{index: j, pos: s.Positions[j].Add(t)})
		}
	}
	return sites
}

// point is a 2D point in the bisector-plane coordinate system.
type point struct{ a, b float64 }

// sharesFace reports whether the Voronoi cells of p and q share a face.
// The perpendicular-bisector plane of (p, q) is clipped, as a bounded
// polygon, against the bisector half-plane of every other site; the face
// exists iff a polygon of positive area survives.
func sharesFace(p, q structure.Vec, sites []site) bool {
	u := q.Sub(p)
	dist := u.Norm()
	u = u.Scale(1 / dist)
	mid := p.Add(q).Scale(0.5)
	e1, e2 := planeBasis(u)

	// Bounding square, generously larger than any cell.
	const h = voronoiSearchRadius
	poly := []point{{-h, -h}, {h, -h}, {h, h}, {-h, h}}

	for _, other := range sites {
		if other.pos.Dist(p) < minSeparation || other.pos.Dist(q) < minSeparation {
			continue
		}
		// Points x on the plane closer to p than to other.pos satisfy
		// 2x·w <= |o|² − |p|² with w = o − p. Substituting
		// x = mid + a·e1 + b·e2 gives a linear constraint in (a, b).
		o := other.pos
		w := o.Sub(p)
		alpha := 2 * e1.Dot(w)
		beta := 2 * e2.Dot(w)
		gamma := o.Dot(o) - p.Dot(p) - 2*mid.Dot(w)

		poly = clipHalfPlane(poly, alpha, beta, gamma)
		if len(poly) < 3 {
			return false
		}
	}
	return polygonArea(poly) > faceAreaTol*h*h
}

// planeBasis returns an orthonormal basis of the plane with normal u.
func planeBasis(u structure.Vec) (structure.Vec, structure.Vec) {
	ref := structure.Vec{1, 0, 0}
	if math.Abs(u[0]) > 0.9 {
		ref = structure.Vec{0, 1, 0}
	}
	e1 := u.Cross(ref)
	e1 = e1.Scale(1 / e1.Norm())
	e2 := u.Cross(e1)
	return e1, e2
}

// clipHalfPlane clips a convex polygon against α·a + β·b <= γ
// (Sutherland–Hodgman, single edge).
func clipHalfPlane(poly []point, alpha, beta, gamma float64) []point {
	inside := func(pt point) bool { return alpha*pt.a+beta*pt.b <= gamma }

	var out []point
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn, prevIn := inside(cur), inside(prev)
		if curIn != prevIn {
			// Intersection of segment prev→cur with the constraint line.
			da := alpha*prev.a + beta*prev.b - gamma
			db := alpha*cur.a + beta*cur.b - gamma
			t := da / (da - db)
			out = append(out, point{
				a: prev.a + t*(cur.a-prev.a),
				b: prev.b + t*(cur.b-prev.b),
			})
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

// polygonArea returns the area of a convex polygon via the shoelace formula.
func polygonArea(poly []point) float64 {
	area := 0.0
	for i, cur := range poly {
		next := poly[(i+1)%len(poly)]
		area += cur.a*next.b - next.a*cur.b
	}
	return math.Abs(area) / 2
}
