// Package l7builder owns Layer 7 (Combinatorial Builder): the per-seed
// outward walk across layers that propagates, gates, and extends a
// bounded beam of candidates.
//
// Control flow follows a predict/gate/score/update/prune cycle: propagate
// each live candidate to the next layer, gate compatible hits against a
// spatial window, score with a chi-squared test, update with the Kalman
// filter, and prune the surviving candidates to a bounded beam.
//
// Dependency rule: L7 may depend on L1-L6, but never on L8.
package l7builder
