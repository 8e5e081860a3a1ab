package regression

import "math"

// SingularityTolerance is the per-observation relative threshold below which
// the normal matrix XᵗX of an n-observation fit is treated as singular.
//
// With ad and bc the two products of the determinant, the matrix is singular when
//
//	|ad - bc| <= n * SingularityTolerance * (|ad| + |bc|)
//
// The sums Σx and Σx² each carry a relative rounding error of at most about
// n machine epsilons, so for zero-variance X the two products agree to within
// a few n·ε. The bound is eight epsilons per observation, which rejects every
// constant X at any scale while still solving ill-conditioned but invertible
// data such as X = [1e6, 1e6+1].
const SingularityTolerance = 8 * 0x1p-52

// DesignMatrix is the read-only n×2 matrix with one row [1, x_i] per observation.
type DesignMatrix struct {
	x []float64
}

// NewDesignMatrix builds the design matrix for the independent observations x.
// The slice is retained, not copied; callers pass data they won't modify.
func NewDesignMatrix(x []float64) DesignMatrix {
	return DesignMatrix{x: x}
}

// Rows returns the number of observations.
func (d DesignMatrix) Rows() int {
	return len(d.x)
}

// Row returns the i-th row [1, x_i].
func (d DesignMatrix) Row(i int) [2]float64 {
	return [2]float64{1.0, d.x[i]}
}

// Gram computes XᵗX.
//
//	[ n    Σx  ]
//	[ Σx   Σx² ]
func (d DesignMatrix) Gram() Matrix2 {
	var m Matrix2
	for i := range d.x {
		row := d.Row(i)
		for r := range 2 {
			for c := range 2 {
				m[r][c] += row[r] * row[c]
			}
		}
	}

	return m
}

// TransposeMul computes Xᵗy = [Σy, Σxy].
func (d DesignMatrix) TransposeMul(y []float64) Vector2 {
	var v Vector2
	for i := range d.x {
		row := d.Row(i)
		v[0] += row[0] * y[i]
		v[1] += row[1] * y[i]
	}

	return v
}

// Matrix2 is a dense 2×2 matrix in row-major order.
type Matrix2 [2][2]float64

// Vector2 is a dense length-2 column vector.
type Vector2 [2]float64

// Det returns the determinant ad-bc.
func (m Matrix2) Det() float64 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// Singular reports whether m has no numerically meaningful inverse, using the
// relative tolerance tol on its determinant. Non-finite entries count as singular.
func (m Matrix2) Singular(tol float64) bool {
	ad := m[0][0] * m[1][1]
	bc := m[0][1] * m[1][0]
	det := ad - bc

	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return true
	}

	return math.Abs(det) <= tol*(math.Abs(ad)+math.Abs(bc))
}

// Inverse returns the closed-form inverse 1/(ad-bc) * [[d, -b], [-c, a]].
// It returns ErrSingularDesignMatrix when m is singular under tol.
func (m Matrix2) Inverse(tol float64) (Matrix2, error) {
	if m.Singular(tol) {
		return Matrix2{}, ErrSingularDesignMatrix
	}

	inv := 1.0 / m.Det()

	return Matrix2{
		{m[1][1] * inv, -m[0][1] * inv},
		{-m[1][0] * inv, m[0][0] * inv},
	}, nil
}

// MulVec returns m·v.
func (m Matrix2) MulVec(v Vector2) Vector2 {
	return Vector2{
		m[0][0]*v[0] + m[0][1]*v[1],
		m[1][0]*v[0] + m[1][1]*v[1],
	}
}
