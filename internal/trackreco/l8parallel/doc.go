// Package l8parallel owns Layer 8 (Parallel Driver): the two execution
// strategies over an l7builder.Builder -- seed-parallel and
// layer-then-seed-parallel -- both producing the same set of committed
// tracks as a serial Builder.Build run, up to the beam comparator's
// unspecified tie-break.
//
// Built on golang.org/x/sync/errgroup for worker fan-out and a
// sync.Mutex-guarded shared-state idiom for the one piece of state every
// worker touches: the final-candidates sink.
//
// Dependency rule: L8 may depend on L1-L7.
package l8parallel
