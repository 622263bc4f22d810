package structure

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/larsmk/crystalgraph/pkg/errors"
)

// Lattice is a periodic cell basis. Rows are the three lattice vectors in
// Cartesian coordinates, so fractional coordinates f map to Cartesian as
// f[0]·A + f[1]·B + f[2]·C.
type Lattice struct {
	A, B, C Vec
}

// Cubic returns a cubic lattice with edge length a.
func Cubic(a float64) *Lattice {
	return &Lattice{
		A: Vec{a, 0, 0},
		B: Vec{0, a, 0},
		C: Vec{0, 0, a},
	}
}

// Volume returns the cell volume |A · (B × C)|.
func (l *Lattice) Volume() float64 {
	return math.Abs(l.A.Dot(l.B.Cross(l.C)))
}

// Cartesian converts fractional coordinates to Cartesian.
func (l *Lattice) Cartesian(frac Vec) Vec {
	return l.A.Scale(frac[0]).Add(l.B.Scale(frac[1])).Add(l.C.Scale(frac[2]))
}

// Fractional converts Cartesian coordinates to fractional by solving the
// 3×3 basis system. Returns an error for a singular (degenerate) lattice.
func (l *Lattice) Fractional(cart Vec) (Vec, error) {
	// Rows of the basis matrix are the lattice vectors, so cart = fracᵀ·M.
	m := mat.NewDense(3, 3, []float64{
		l.A[0], l.A[1], l.A[2],
		l.B[0], l.B[1], l.B[2],
		l.C[0], l.C[1], l.C[2],
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return Vec{}, errors.Wrap(errors.ErrCodeInvalidStructure, err, "singular lattice")
	}
	var out mat.VecDense
	out.MulVec(inv.T(), mat.NewVecDense(3, []float64{cart[0], cart[1], cart[2]}))
	return Vec{out.AtVec(0), out.AtVec(1), out.AtVec(2)}, nil
}

// widths returns the perpendicular width of the cell along each lattice
// vector: volume divided by the area of the face spanned by the other two.
func (l *Lattice) widths() [3]float64 {
	vol := l.Volume()
	return [3]float64{
		vol / l.B.Cross(l.C).Norm(),
		vol / l.C.Cross(l.A).Norm(),
		vol / l.A.Cross(l.B).Norm(),
	}
}

// Translations enumerates the lattice translations t = i·A + j·B + k·C needed
// so that, for any two atoms inside the cell, every image pair within radius
// is visited. The repeat count per direction is derived from the cell's
// perpendicular width, with one extra shell for atoms near cell boundaries.
// The zero translation is included.
func (l *Lattice) Translations(radius float64) []Vec {
	w := l.widths()
	var reps [3]int
	for i, wi := range w {
		reps[i] = int(math.Ceil(radius/wi)) + 1
	}

	out := make([]Vec, 0, (2*reps[0]+1)*(2*reps[1]+1)*(2*reps[2]+1))
	for i := -reps[0]; i <= reps[0]; i++ {
		for j := -reps[1]; j <= reps[1]; j++ {
			for k := -reps[2]; k <= reps[2]; k++ {
				t := l.A.Scale(float64(i)).Add(l.B.Scale(float64(j))).Add(l.C.Scale(float64(k)))
				out = append(out, t)
			}
		}
	}
	return out
}
