package l8parallel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/heptrack/trackcore/internal/trackreco/config"
	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"github.com/heptrack/trackcore/internal/trackreco/l7builder"
	"github.com/heptrack/trackcore/internal/trackreco/tracklog"
)

// chunkBounds splits [0,n) into up to numWorkers contiguous sub-ranges.
func chunkBounds(n, numWorkers int) [][2]int {
	if numWorkers < 1 {
		numWorkers = 1
	}
	size := (n + numWorkers - 1) / numWorkers
	if size < 1 {
		size = 1
	}
	var bounds [][2]int
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		bounds = append(bounds, [2]int{start, end})
	}
	return bounds
}

func checkParallelSafe(cfg config.Config, numWorkers int) error {
	if cfg.LinearInterp && numWorkers > 1 {
		tracklog.Opsf("rejecting parallel run: LinearInterp requested with %d workers", numWorkers)
		return fmt.Errorf("l8parallel: %w: requested %d workers", config.ErrLinearInterpNotSerializable, numWorkers)
	}
	return nil
}

// RunSeedParallel partitions seeds into contiguous sub-ranges across
// numWorkers goroutines; each worker walks every layer for its own
// seeds independently, with no cross-worker interaction except the
// final commit.
func RunSeedParallel(ctx context.Context, b *l7builder.Builder, seeds []l3state.Candidate, numWorkers int) ([]l3state.Track, error) {
	if err := checkParallelSafe(b.Cfg, numWorkers); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	sink := &ResultSink{}
	g, _ := errgroup.WithContext(ctx)
	for _, bound := range chunkBounds(len(seeds), numWorkers) {
		start, end := bound[0], bound[1]
		g.Go(func() error {
			for i := start; i < end; i++ {
				sink.Append(b.BuildSeed(seeds[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sink.Tracks(), nil
}

// RunLayerThenSeedParallel runs an outer serial loop over layers and an
// inner parallel loop over seeds, with an explicit barrier between
// layers. This trades a per-layer synchronization point for better
// cache locality on hit access, since every worker touches the same
// layer's hit array and Segment Index in the same step instead of each
// worker touching every layer for its own seeds in isolation.
func RunLayerThenSeedParallel(ctx context.Context, b *l7builder.Builder, seeds []l3state.Candidate, numWorkers int) ([]l3state.Track, error) {
	if err := checkParallelSafe(b.Cfg, numWorkers); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	cfg := b.Cfg
	sink := &ResultSink{}

	beams := make([][]l3state.Candidate, len(seeds))
	for i, s := range seeds {
		beams[i] = []l3state.Candidate{s}
	}
	retired := make([]bool, len(seeds))

	for layer := cfg.NLayersPerSeed; layer < cfg.NLayers; layer++ {
		tmps := make([][]l3state.Candidate, len(seeds))

		g, _ := errgroup.WithContext(ctx)
		for _, bound := range chunkBounds(len(seeds), numWorkers) {
			start, end := bound[0], bound[1]
			g.Go(func() error {
				for i := start; i < end; i++ {
					if retired[i] {
						continue
					}
					tmps[i] = b.StepLayer(beams[i], layer)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for i := range seeds {
			if retired[i] {
				continue
			}
			switch tmp := tmps[i]; {
			case len(tmp) == 0:
				sink.Append(l7builder.FinalizeBest(beams[i]))
				retired[i] = true
			case len(tmp) > cfg.MaxCand:
				beams[i] = l7builder.TruncateToBest(tmp, cfg.MaxCand)
			default:
				beams[i] = tmp
			}
		}
	}

	for i := range seeds {
		if !retired[i] {
			sink.Append(l7builder.FinalizeBest(beams[i]))
		}
	}

	return sink.Tracks(), nil
}
