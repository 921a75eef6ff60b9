// Package l1geom owns Layer 1 (Geometry) of the track reconstruction
// core's data model.
//
// Responsibilities: the cylinder-stack detector geometry -- per-layer
// radius and layer count -- exposed to the propagator and builder.
// Key types: Geometry.
//
// Dependency rule: L1 depends on nothing else in this module.
package l1geom
