package l7builder

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/heptrack/trackcore/internal/trackreco/config"
	"github.com/heptrack/trackcore/internal/trackreco/l1geom"
	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"github.com/heptrack/trackcore/internal/trackreco/l4propagate"
	"github.com/heptrack/trackcore/internal/trackreco/l5kalman"
	"github.com/heptrack/trackcore/internal/trackreco/l6segindex"
	"github.com/heptrack/trackcore/internal/trackreco/trackdebug"
	"github.com/heptrack/trackcore/internal/trackreco/tracklog"
)

// Builder holds the per-event, read-only inputs the combinatorial build
// needs: the geometry, each layer's sorted hit vector and Segment Index,
// and the tuning Config. These are shared read-only across every seed's
// build, so a single Builder may be driven concurrently by l8parallel as
// long as callers only ever read its fields.
type Builder struct {
	Geom       *l1geom.Geometry
	LayerHits  [][]l3state.Hit
	SegIndex   []*l6segindex.Index
	Cfg        config.Config
	PropParams l4propagate.Params
	Debug      *trackdebug.Collector
}

// Validate checks the invariants that are fatal at initialization --
// layer indices out of range, a Segment Index inconsistent with its
// layer's hit count -- rather than letting a malformed input corrupt a
// build silently. Callers (Build and l8parallel's two strategies) call
// this once per event before touching any seed.
func (b *Builder) Validate() error {
	nLayers := b.Geom.NumLayers()
	if len(b.LayerHits) != nLayers || len(b.SegIndex) != nLayers {
		return fmt.Errorf("%w: geometry has %d layers but LayerHits has %d and SegIndex has %d",
			config.ErrLayerOutOfRange, nLayers, len(b.LayerHits), len(b.SegIndex))
	}
	for l := 0; l < nLayers; l++ {
		idx := b.SegIndex[l]
		wantCells := idx.NEtaPart*idx.NPhiPart + 1
		if len(idx.First) != wantCells {
			return fmt.Errorf("%w: layer %d Segment Index has %d offsets, want %d for %dx%d cells",
				config.ErrSegmentMapInconsistent, l, len(idx.First), wantCells, idx.NEtaPart, idx.NPhiPart)
		}
		if total := idx.First[len(idx.First)-1]; total != len(b.LayerHits[l]) {
			return fmt.Errorf("%w: layer %d Segment Index covers %d hits but LayerHits has %d",
				config.ErrSegmentMapInconsistent, l, total, len(b.LayerHits[l]))
		}
	}
	return nil
}

// Build runs BuildSeed for every seed in order, serially. This is the
// reference strategy l8parallel's parallel strategies must reproduce as
// the same set of committed tracks.
func (b *Builder) Build(seeds []l3state.Candidate) []l3state.Track {
	if err := b.Validate(); err != nil {
		panic(err)
	}
	out := make([]l3state.Track, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, b.BuildSeed(s))
	}
	return out
}

// BuildSeed walks one seed's candidate beam outward through every layer
// from Cfg.NLayersPerSeed to Cfg.NLayers and returns the single best
// surviving Track.
func (b *Builder) BuildSeed(seed l3state.Candidate) l3state.Track {
	live := []l3state.Candidate{seed}

	for layer := b.Cfg.NLayersPerSeed; layer < b.Cfg.NLayers; layer++ {
		prevLive := live
		tmp := b.StepLayer(live, layer)

		if b.Debug != nil {
			b.Debug.RecordBuildStep(layer, len(tmp), len(prevLive))
		}

		switch {
		case len(tmp) == 0:
			// Beam exhaustion: commit the pre-step best and retire the
			// seed rather than walking the remaining layers.
			best := FinalizeBest(prevLive)
			tracklog.Opsf("seed %s: beam exhausted at layer %d, retiring with %d hits", seed.Track.SeedID, layer, best.NHits())
			return best
		case len(tmp) > b.Cfg.MaxCand:
			live = TruncateToBest(tmp, b.Cfg.MaxCand)
		default:
			live = tmp
		}
	}

	return FinalizeBest(live)
}

// FinalizeBest picks the comparator-best candidate in a beam and
// collapses it into a committed Track, stamping its final TrackState.
// Exported so l8parallel's layer-then-seed strategy -- which drives
// StepLayer directly rather than through BuildSeed -- can commit a
// retiring seed's beam the same way.
func FinalizeBest(beam []l3state.Candidate) l3state.Track {
	best := BestOf(beam)
	out := best.Track
	out.State = best.State
	return out
}

// StepLayer processes every live candidate in beam against one layer's
// hits -- propagate, gate, score, update -- and returns the layer's
// unpruned tmp list; pruning to MaxCand is left to the caller
// (TruncateToBest). Exported so l8parallel's layer-then-seed strategy
// can drive the per-layer step directly while keeping its own per-seed
// beam state across the outer serial layer loop.
func (b *Builder) StepLayer(live []l3state.Candidate, layer int) []l3state.Candidate {
	hits := b.LayerHits[layer]
	idx := b.SegIndex[layer]
	R := b.Geom.Radius(layer)

	var tmp []l3state.Candidate
	for _, cand := range live {
		predicted := l4propagate.PropagateHelixToR(cand.State, R, b.PropParams)
		if !predicted.Valid {
			// Propagation failure: drop the candidate silently.
			tracklog.Tracef("seed %s: propagation to layer %d (R=%g) failed, dropping candidate with %d hits", cand.Track.SeedID, layer, R, cand.Track.NHits())
			continue
		}

		w := computeWindow(predicted, b.Cfg)
		gathered := idx.Gather(w.etaBinMin, w.etaBinMax, w.phiBinMin, w.phiBinMax)

		maxR, interpolating := R, false
		propMax := predicted
		if b.Cfg.LinearInterp && len(gathered) > 0 {
			maxR = maxHitR(hits, gathered)
			if maxR > R {
				propMax = l4propagate.PropagateHelixToR(cand.State, maxR, b.PropParams)
				if !propMax.Valid {
					// Both min- and max-R propagations are needed for
					// interpolation; the max-R one failed, so drop the
					// candidate on this layer entirely.
					continue
				}
				interpolating = true
			}
		}

		var accepted []int
		var acceptedChi2 []float64
		for _, hi := range gathered {
			hit := hits[hi]
			predState := predicted
			if interpolating {
				t := (hit.R() - R) / (maxR - R)
				predState.Params = lerpParams(predicted.Params, propMax.Params, t)
			}

			chi2, ok := l5kalman.ComputeChi2(predState, hit)
			if !ok || chi2 >= b.Cfg.Chi2Cut {
				continue
			}
			posterior, ok := l5kalman.UpdateParameters(predState, hit)
			if !ok {
				continue
			}
			accepted = append(accepted, hi)
			acceptedChi2 = append(acceptedChi2, chi2)
			tmp = append(tmp, l3state.Candidate{
				Track: cand.Track.WithHit(layer, hi, chi2),
				State: posterior,
			})
		}

		if cand.Track.NHits() == layer {
			// Missed-layer candidate: at most one miss before the
			// candidate falls behind -- once it's fired, NHits < layer
			// on every subsequent iteration and this branch can't fire
			// again.
			tmp = append(tmp, l3state.Candidate{Track: cand.Track, State: predicted})
		}

		if b.Debug != nil {
			b.Debug.RecordGather(cand.Track.SeedID, layer, gathered, accepted, acceptedChi2, w.nSigmaDPhi, w.nSigmaDEta, w.phiBinMin, w.phiBinMax, w.etaBinMin, w.etaBinMax)
		}
	}
	return tmp
}

func maxHitR(hits []l3state.Hit, indices []int) float64 {
	rs := make([]float64, len(indices))
	for i, hi := range indices {
		rs[i] = hits[hi].R()
	}
	return floats.Max(rs)
}

// BestOf returns the candidate the beam comparator ranks highest.
func BestOf(cands []l3state.Candidate) l3state.Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if l3state.Better(c, best) {
			best = c
		}
	}
	return best
}

// TruncateToBest sorts tmp in place by the beam comparator and keeps the
// top maxCand, stably so ties break on original position and ordering
// stays deterministic within a single-threaded run.
func TruncateToBest(cands []l3state.Candidate, maxCand int) []l3state.Candidate {
	sort.SliceStable(cands, func(i, j int) bool {
		return l3state.Better(cands[i], cands[j])
	})
	return append([]l3state.Candidate(nil), cands[:maxCand]...)
}
