package l2linalg

import "gonum.org/v1/gonum/mat"

// Vec3 is a fixed 3-element vector, typically a position or residual.
type Vec3 [3]float64

// Vec6 is a fixed 6-element vector: track-state parameters
// (x, y, z, px, py, pz).
type Vec6 [6]float64

// Dense returns a gonum column vector view for use with mat routines.
func (v Vec3) Dense() *mat.VecDense { return mat.NewVecDense(3, v[:]) }

// Dense returns a gonum column vector view for use with mat routines.
func (v Vec6) Dense() *mat.VecDense { return mat.NewVecDense(6, v[:]) }

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Add returns a + b.
func (a Vec6) Add(b Vec6) Vec6 {
	var out Vec6
	for i := range out {
		out[i] = a[i] + b[i]
	}
	return out
}

// Vec3FromDense copies a 3-row gonum vector into a Vec3.
func Vec3FromDense(v *mat.VecDense) Vec3 {
	return Vec3{v.AtVec(0), v.AtVec(1), v.AtVec(2)}
}

// Vec6FromDense copies a 6-row gonum vector into a Vec6.
func Vec6FromDense(v *mat.VecDense) Vec6 {
	var out Vec6
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
