package l1geom

import "fmt"

// Geometry describes a cylindrical, layered silicon tracker as a stack of
// concentric cylinders. Layer radii must be strictly increasing; the
// builder walks outward from layer 0.
type Geometry struct {
	radii []float64
}

// NewGeometry builds a Geometry from per-layer radii, which must be
// strictly increasing. Returns an error instead of panicking so that a
// malformed detector description fails at initialization rather than
// mid-build.
func NewGeometry(radii []float64) (*Geometry, error) {
	if len(radii) == 0 {
		return nil, fmt.Errorf("l1geom: geometry must have at least one layer")
	}
	for i := 1; i < len(radii); i++ {
		if radii[i] <= radii[i-1] {
			return nil, fmt.Errorf("l1geom: layer radii must be strictly increasing, got R[%d]=%g <= R[%d]=%g",
				i, radii[i], i-1, radii[i-1])
		}
	}
	cp := make([]float64, len(radii))
	copy(cp, radii)
	return &Geometry{radii: cp}, nil
}

// NumLayers returns the number of cylinder layers.
func (g *Geometry) NumLayers() int {
	return len(g.radii)
}

// Radius returns the radius of the given layer. Panics on an out-of-range
// layer index: this is an invariant violation, not a recoverable runtime
// condition, so callers are expected to validate layer indices against
// NumLayers before calling.
func (g *Geometry) Radius(layer int) float64 {
	if layer < 0 || layer >= len(g.radii) {
		panic(fmt.Sprintf("l1geom: layer %d out of range [0,%d)", layer, len(g.radii)))
	}
	return g.radii[layer]
}
