// Package trackdebug is the optional validation sink the builder calls
// into: per-layer beam-size bookkeeping and, when enabled, per-seed/
// per-layer gather/accept records for diagnostics.
//
// The Collector is disabled by default, effectively free when off, and
// internally synchronized so concurrent builder tasks (seed-parallel or
// layer-then-seed) can share one Collector without racing.
package trackdebug
