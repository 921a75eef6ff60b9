package l3state

import (
	"github.com/google/uuid"
	"github.com/heptrack/trackcore/internal/trackreco/l2linalg"
)

// TrackState is the 6D Kalman state of a track candidate: position and
// momentum, with its 6x6 covariance. Propagation and Kalman update both
// produce new TrackStates; an invalid state is inert downstream -- no
// update is attempted and no candidate is spawned from it.
type TrackState struct {
	Params l2linalg.Vec6 // (x, y, z, px, py, pz)
	Cov    l2linalg.Mat6
	Valid  bool

	// Charge is the particle's charge sign (+1 or -1). The helix
	// propagator needs it to know which way the track curves in the
	// detector's axial field; without it, (x,y,z,px,py,pz) alone
	// under-determines the trajectory. A Charge of 0 (the zero value)
	// propagates as a straight line.
	Charge float64
}

// HitRef is one entry in a Track's ordered hit history: which layer,
// which hit within that layer's sorted vector, and the χ² it contributed.
type HitRef struct {
	Layer   int
	Index   int
	Chi2    float64
}

// Track is the ordered, growing record of hits a candidate has picked up.
// Invariants: hits appear in strictly increasing layer order;
// len(Hits) <= number of layers; Chi2 is non-decreasing as hits are
// appended.
type Track struct {
	Hits  []HitRef
	Chi2  float64
	State TrackState

	SeedID uuid.UUID
	SimID  string
}

// NHits returns the number of hits this track has accumulated so far.
func (t Track) NHits() int {
	return len(t.Hits)
}

// WithHit returns a copy of t with a new hit appended and its χ² added
// to the cumulative total. The receiver is left unmodified so the
// builder can fan a single candidate out into several without aliasing
// history slices between them.
func (t Track) WithHit(layer, index int, chi2 float64) Track {
	out := t
	out.Hits = append(append([]HitRef(nil), t.Hits...), HitRef{Layer: layer, Index: index, Chi2: chi2})
	out.Chi2 = t.Chi2 + chi2
	return out
}

// Candidate pairs a Track with the TrackState to propagate from on the
// next layer: the posterior after the most recently accepted hit, or the
// propagated prior if the layer was missed.
type Candidate struct {
	Track Track
	State TrackState
}

// Better implements the beam comparator: a is better than b iff it has
// strictly more hits, or the same number of hits and a strictly smaller
// cumulative χ².
func Better(a, b Candidate) bool {
	if a.Track.NHits() != b.Track.NHits() {
		return a.Track.NHits() > b.Track.NHits()
	}
	return a.Track.Chi2 < b.Track.Chi2
}
