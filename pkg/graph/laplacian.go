package graph

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

// laplacianGuidance is appended to numerical-validity errors so callers know
// the usual fix without reading the linear algebra.
const laplacianGuidance = "the graph likely has an atom with no reachable neighbors; " +
	"try enlarging the cutoff radius or inspect the source structure"

// NormalizedLaplacian computes the symmetric-normalized Laplacian
// L = I − D^(−1/2) A D^(−1/2) of a weighted adjacency matrix, where D is the
// diagonal degree matrix with D_ii = Σ_j A_ij.
//
// The result is guaranteed finite: a zero-degree row (which would make
// D^(−1/2) undefined) or any non-finite input weight yields a
// NONFINITE_LAPLACIAN error instead of a corrupted matrix.
func NormalizedLaplacian(adj *mat.SymDense) (*mat.SymDense, error) {
	n := adj.SymmetricDim()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "adjacency matrix is empty")
	}

	dinv := make([]float64, n)
	for i := 0; i < n; i++ {
		deg := 0.0
		for j := 0; j < n; j++ {
			deg += adj.At(i, j)
		}
		if deg <= 0 || math.IsInf(deg, 0) || math.IsNaN(deg) {
			return nil, errors.New(errors.ErrCodeNonFiniteLaplacian,
				"atom %d has total edge weight %v; %s", i, deg, laplacianGuidance)
		}
		dinv[i] = 1 / math.Sqrt(deg)
	}

	lap := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := -dinv[i] * adj.At(i, j) * dinv[j]
			if i == j {
				v++
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New(errors.ErrCodeNonFiniteLaplacian,
					"laplacian entry (%d,%d) is non-finite; %s", i, j, laplacianGuidance)
			}
			lap.SetSym(i, j, v)
		}
	}
	return lap, nil
}
