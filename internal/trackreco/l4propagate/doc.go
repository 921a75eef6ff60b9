// Package l4propagate owns Layer 4 (Propagator) of the track
// reconstruction core.
//
// Responsibilities: advancing a 6D helical track state to a target
// cylinder radius, transporting its covariance by the propagation
// Jacobian, and the interpolating variant used by the builder's optional
// LINEARINTERP mode.
// Key types: Params.
//
// Dependency rule: L4 may depend on L1-L3, but never on L5+.
package l4propagate
