// Package l3state owns Layer 3 (Hit & Track State Model) of the track
// reconstruction core's data model.
//
// Responsibilities: the immutable per-hit measurement, the 6D Kalman
// track state, and the Track/Candidate types the builder grows layer by
// layer.
// Key types: Hit, TrackState, Track, HitRef, Candidate.
//
// Dependency rule: L3 may depend on L1-L2, but never on L4+.
package l3state
