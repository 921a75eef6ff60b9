package l3state

import (
	"math"

	"github.com/heptrack/trackcore/internal/trackreco/l2linalg"
)

// Hit is an immutable per-layer measurement: a 3D position with its 3x3
// position covariance, plus bookkeeping the core needs to refer back to
// where the hit lives.
type Hit struct {
	X, Y, Z float64
	Cov     l2linalg.Mat3

	// LayerID is the layer this hit was measured on.
	LayerID int
	// Index is the hit's position within its layer's sorted hit vector
	// (the permutation l6segindex builds); hit references elsewhere in
	// the core are (LayerID, Index) pairs into that vector.
	Index int
	// SimID ties the hit back to its originating simulated track, for
	// validation only; the core algorithm never reads it.
	SimID string
}

// R returns the hit's cylindrical radius.
func (h Hit) R() float64 {
	return math.Hypot(h.X, h.Y)
}

// Phi returns the hit's azimuthal angle in (-π, π].
func (h Hit) Phi() float64 {
	return math.Atan2(h.Y, h.X)
}

// Eta returns the hit's pseudorapidity.
func (h Hit) Eta() float64 {
	r := h.R()
	theta := math.Atan2(r, h.Z)
	return -math.Log(math.Tan(theta / 2))
}
