// Package l2linalg owns Layer 2 (Small Linear Algebra) of the track
// reconstruction core's data model.
//
// Responsibilities: fixed-size 3- and 6-vectors and 3x3/6x6/3x6/6x3
// matrices, backed by gonum.org/v1/gonum/mat, with the inversion and
// multiplication the propagator and Kalman update need.
// Key types: Vec3, Vec6, Mat3, Mat6, Mat3x6, Mat6x3.
//
// Dependency rule: L2 depends on nothing else in this module.
package l2linalg
