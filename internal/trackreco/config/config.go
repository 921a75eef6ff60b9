// Package config holds the Config struct that parameterizes every layer
// of the reconstruction core. There is no file boundary here -- the
// core has no persistence -- so configuration is a plain struct with a
// Default constructor and a Validate() error method rather than a
// flag/JSON library.
package config

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for the fatal configuration/invariant classes,
// wrapped with context by Validate and by the builder's own
// precondition checks.
var (
	ErrLinearInterpNotSerializable = errors.New("trackreco: LinearInterp is not safe to run with more than one worker")
	ErrLayerOutOfRange             = errors.New("trackreco: layer index out of range")
	ErrSegmentMapInconsistent      = errors.New("trackreco: segment map inconsistent with layer hit count")
	ErrSeedLayerMismatch           = errors.New("trackreco: seed track hit count does not match NLayersPerSeed")
)

// Config collects every tunable of the reconstruction core.
type Config struct {
	NLayers         int
	NLayersPerSeed  int
	NEtaPart        int
	NPhiPart        int
	EtaDet          float64
	NSigma          float64
	MinDPhi         float64
	Chi2Cut         float64
	MaxCand         int
	EtaSeg          bool
	LinearInterp    bool

	// NumWorkers is the worker count Validate checks LinearInterp
	// against. l8parallel's run functions take their own numWorkers
	// argument and check that instead; they do not read this field.
	NumWorkers int
}

// DefaultConfig returns a representative scenario geometry/tuning for a
// 10-layer cylindrical tracker: nlayers_per_seed=3, nEtaPart=10,
// nPhiPart=63, etaDet=2.0, nSigma=3, chi2Cut=15, maxCand=10.
func DefaultConfig() Config {
	return Config{
		NLayers:        10,
		NLayersPerSeed: 3,
		NEtaPart:       10,
		NPhiPart:       63,
		EtaDet:         2.0,
		NSigma:         3,
		MinDPhi:        1e-4,
		Chi2Cut:        15,
		MaxCand:        10,
		EtaSeg:         true,
		LinearInterp:   false,
		NumWorkers:     1,
	}
}

// Validate rejects configurations that are fatal at initialization.
func (c Config) Validate() error {
	if c.NLayers <= 0 {
		return fmt.Errorf("%w: NLayers=%d must be positive", ErrLayerOutOfRange, c.NLayers)
	}
	if c.NLayersPerSeed < 0 || c.NLayersPerSeed > c.NLayers {
		return fmt.Errorf("%w: NLayersPerSeed=%d out of [0,%d]", ErrSeedLayerMismatch, c.NLayersPerSeed, c.NLayers)
	}
	if c.NEtaPart <= 0 {
		return fmt.Errorf("trackreco: NEtaPart=%d must be positive", c.NEtaPart)
	}
	if c.NPhiPart <= 0 {
		return fmt.Errorf("trackreco: NPhiPart=%d must be positive", c.NPhiPart)
	}
	if c.EtaDet <= 0 {
		return fmt.Errorf("trackreco: EtaDet=%g must be positive", c.EtaDet)
	}
	if c.NSigma <= 0 {
		return fmt.Errorf("trackreco: NSigma=%g must be positive", c.NSigma)
	}
	if c.MinDPhi < 0 || c.MinDPhi > math.Pi {
		return fmt.Errorf("trackreco: MinDPhi=%g must be within [0,pi]", c.MinDPhi)
	}
	if c.Chi2Cut <= 0 {
		return fmt.Errorf("trackreco: Chi2Cut=%g must be strictly positive", c.Chi2Cut)
	}
	if c.MaxCand <= 0 {
		return fmt.Errorf("trackreco: MaxCand=%d must be positive", c.MaxCand)
	}
	if c.NumWorkers <= 0 {
		return fmt.Errorf("trackreco: NumWorkers=%d must be positive", c.NumWorkers)
	}
	if c.LinearInterp && c.NumWorkers > 1 {
		return fmt.Errorf("%w: NumWorkers=%d", ErrLinearInterpNotSerializable, c.NumWorkers)
	}
	return nil
}
