package l2linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Mat3 is a fixed 3x3 row-major matrix, typically a position covariance
// or a projection-related intermediate.
type Mat3 [9]float64

// Mat6 is a fixed 6x6 row-major matrix: a track-state covariance.
type Mat6 [36]float64

// Mat3x6 is a fixed 3-row, 6-column row-major matrix: the projection H
// from 6D state space to 3D position space, or its transpose's shape.
type Mat3x6 [18]float64

// Mat6x3 is a fixed 6-row, 3-column row-major matrix: Hᵀ, or a Kalman
// gain K.
type Mat6x3 [18]float64

// Dense returns a gonum dense-matrix view backed by m's own storage.
func (m *Mat3) Dense() *mat.Dense { return mat.NewDense(3, 3, m[:]) }

// Dense returns a gonum dense-matrix view backed by m's own storage.
func (m *Mat6) Dense() *mat.Dense { return mat.NewDense(6, 6, m[:]) }

// Dense returns a gonum dense-matrix view backed by m's own storage.
func (m *Mat3x6) Dense() *mat.Dense { return mat.NewDense(3, 6, m[:]) }

// Dense returns a gonum dense-matrix view backed by m's own storage.
func (m *Mat6x3) Dense() *mat.Dense { return mat.NewDense(6, 3, m[:]) }

// Mat3FromDense copies a 3x3 gonum matrix into a Mat3.
func Mat3FromDense(d mat.Matrix) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i*3+j] = d.At(i, j)
		}
	}
	return out
}

// Mat6FromDense copies a 6x6 gonum matrix into a Mat6.
func Mat6FromDense(d mat.Matrix) Mat6 {
	var out Mat6
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			out[i*6+j] = d.At(i, j)
		}
	}
	return out
}

// Mat6x3FromDense copies a 6x3 gonum matrix into a Mat6x3.
func Mat6x3FromDense(d mat.Matrix) Mat6x3 {
	var out Mat6x3
	for i := 0; i < 6; i++ {
		for j := 0; j < 3; j++ {
			out[i*3+j] = d.At(i, j)
		}
	}
	return out
}

// Mat3x6FromDense copies a 3x6 gonum matrix into a Mat3x6.
func Mat3x6FromDense(d mat.Matrix) Mat3x6 {
	var out Mat3x6
	for i := 0; i < 3; i++ {
		for j := 0; j < 6; j++ {
			out[i*6+j] = d.At(i, j)
		}
	}
	return out
}

// MulVec returns m*v.
func (m *Mat6) MulVec(v Vec6) Vec6 {
	var out mat.VecDense
	out.MulVec(m.Dense(), v.Dense())
	return Vec6FromDense(&out)
}

// Mul3 returns a*b for two 3x3 matrices.
func Mul3(a, b Mat3) Mat3 {
	var out mat.Dense
	out.Mul(a.Dense(), b.Dense())
	return Mat3FromDense(&out)
}

// Mul6 returns a*b for two 6x6 matrices.
func Mul6(a, b Mat6) Mat6 {
	var out mat.Dense
	out.Mul(a.Dense(), b.Dense())
	return Mat6FromDense(&out)
}

// Transpose3x6 returns mᵀ as a Mat6x3.
func Transpose3x6(m Mat3x6) Mat6x3 {
	return Mat6x3FromDense(m.Dense().T())
}

// Transpose6x3 returns mᵀ as a Mat3x6.
func Transpose6x3(m Mat6x3) Mat3x6 {
	return Mat3x6FromDense(m.Dense().T())
}

// Inverse3 inverts a 3x3 matrix. Returns an error if m is singular
// (determinant within numerical tolerance of zero), which the caller
// treats as a degenerate covariance.
func Inverse3(m Mat3) (Mat3, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.Dense()); err != nil {
		return Mat3{}, fmt.Errorf("l2linalg: singular 3x3 matrix: %w", err)
	}
	return Mat3FromDense(&inv), nil
}

// Symmetrize returns (m + mᵀ)/2, restoring numerical symmetry after a
// sequence of floating-point operations that should have preserved it
// analytically but may have drifted.
func (m Mat6) Symmetrize() Mat6 {
	var out Mat6
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			out[i*6+j] = (m[i*6+j] + m[j*6+i]) / 2
		}
	}
	return out
}

// Sub6 returns a - b.
func Sub6(a, b Mat6) Mat6 {
	var out Mat6
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

// Add returns a + b.
func (a Mat6) Add(b Mat6) Mat6 {
	var out Mat6
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// AddDiag adds d to the diagonal entries of m and returns the result.
func (m Mat6) AddDiag(d [6]float64) Mat6 {
	out := m
	for i := 0; i < 6; i++ {
		out[i*6+i] += d[i]
	}
	return out
}

// Sub3 returns a - b.
func Sub3(a, b Mat3) Mat3 {
	var out Mat3
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}

// Add3 returns a + b.
func Add3(a, b Mat3) Mat3 {
	var out Mat3
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// Identity6 returns the 6x6 identity matrix.
func Identity6() Mat6 {
	var out Mat6
	for i := 0; i < 6; i++ {
		out[i*6+i] = 1
	}
	return out
}
