// Package l5kalman owns Layer 5 (Kalman Update + χ²) of the track
// reconstruction core.
//
// Responsibilities: the χ² compatibility test between a propagated state
// and a hit measurement, and the Kalman posterior state/covariance when a
// hit is accepted.
// Key types: none exported; the projection H is built by an unexported
// helper. Operates on l3state.TrackState and l3state.Hit.
//
// Dependency rule: L5 may depend on L1-L3, but never on L6+.
package l5kalman
