// Command trackviz renders a captured trackdebug.Collector event as an
// HTML beam-size report (go-echarts) and a PNG χ² histogram (gonum/plot).
//
// The core has no persistence, so trackviz does not read a file format:
// it runs a small built-in demo event through the builder with
// debugging enabled, then renders whatever the collector captured. A
// real deployment would wire this against whatever harness runs actual
// events and hands its Collector to these two render functions.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/heptrack/trackcore/internal/trackreco/config"
	"github.com/heptrack/trackcore/internal/trackreco/l1geom"
	"github.com/heptrack/trackcore/internal/trackreco/l2linalg"
	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"github.com/heptrack/trackcore/internal/trackreco/l4propagate"
	"github.com/heptrack/trackcore/internal/trackreco/l6segindex"
	"github.com/heptrack/trackcore/internal/trackreco/l7builder"
	"github.com/heptrack/trackcore/internal/trackreco/trackdebug"
)

func main() {
	htmlOut := flag.String("html", "trackviz_beams.html", "path to write the beam-size HTML report")
	pngOut := flag.String("png", "trackviz_chi2.png", "path to write the chi2 histogram PNG")
	flag.Parse()

	collector := trackdebug.NewCollector()
	collector.SetEnabled(true)
	collector.BeginEvent(1)

	b, seeds := demoBuilder(collector)
	b.Build(seeds)

	ev := collector.Emit()

	if err := renderBeamReport(ev, *htmlOut); err != nil {
		fmt.Fprintln(os.Stderr, "trackviz: render beam report:", err)
		os.Exit(1)
	}
	if err := renderChi2Histogram(ev, *pngOut); err != nil {
		fmt.Fprintln(os.Stderr, "trackviz: render chi2 histogram:", err)
		os.Exit(1)
	}
}

// demoBuilder assembles a small straight-track event purely to give
// trackviz something to render; it exercises the same Builder any real
// caller would construct from simulated hits and seeds.
func demoBuilder(collector *trackdebug.Collector) (*l7builder.Builder, []l3state.Candidate) {
	cfg := config.DefaultConfig()
	cfg.NLayers = 10
	cfg.NLayersPerSeed = 3
	cfg.NEtaPart = 1
	cfg.EtaSeg = false

	radii := make([]float64, cfg.NLayers)
	for i := range radii {
		radii[i] = 4 * float64(i+1)
	}
	geom, err := l1geom.NewGeometry(radii)
	if err != nil {
		panic(err)
	}

	layerHits := make([][]l3state.Hit, cfg.NLayers)
	segIdx := make([]*l6segindex.Index, cfg.NLayers)
	for l := 0; l < cfg.NLayers; l++ {
		raw := []l3state.Hit{{X: geom.Radius(l), Y: 2e-6 * float64(l%3), Z: 0, Cov: l2linalg.Mat3{1e-6, 0, 0, 0, 1e-6, 0, 0, 0, 1e-6}}}
		sorted, idx, err := l6segindex.Build(raw, l, cfg.NEtaPart, cfg.NPhiPart, cfg.EtaDet, cfg.EtaSeg)
		if err != nil {
			panic(err)
		}
		layerHits[l] = sorted
		segIdx[l] = idx
	}

	builder := &l7builder.Builder{
		Geom:       geom,
		LayerHits:  layerHits,
		SegIndex:   segIdx,
		Cfg:        cfg,
		PropParams: l4propagate.DefaultParams(),
		Debug:      collector,
	}

	state := l3state.TrackState{
		Params: l2linalg.Vec6{12, 0, 0, 1, 0, 0},
		Cov: l2linalg.Mat6{
			1e-5, 0, 0, 0, 0, 0,
			0, 1e-5, 0, 0, 0, 0,
			0, 0, 1e-5, 0, 0, 0,
			0, 0, 0, 1e-7, 0, 0,
			0, 0, 0, 0, 1e-7, 0,
			0, 0, 0, 0, 0, 1e-7,
		},
		Valid: true,
	}
	seed := l3state.Candidate{
		Track: l3state.Track{
			Hits:   []l3state.HitRef{{Layer: 0, Index: 0}, {Layer: 1, Index: 0}, {Layer: 2, Index: 0}},
			State:  state,
			SeedID: uuid.New(),
		},
		State: state,
	}
	return builder, []l3state.Candidate{seed}
}

// renderBeamReport writes an HTML bar chart of per-layer beam size
// (tmp count before pruning) using go-echarts.
func renderBeamReport(ev *trackdebug.EventDebug, path string) error {
	layers := make([]string, len(ev.BuildSteps))
	sizes := make([]opts.BarData, len(ev.BuildSteps))
	for i, step := range ev.BuildSteps {
		layers[i] = fmt.Sprintf("L%d", step.Layer)
		sizes[i] = opts.BarData{Value: step.NTmp}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Track Builder Beam Sizes", Theme: "dark"}),
		charts.WithTitleOpts(opts.Title{Title: "Beam size per layer", Subtitle: fmt.Sprintf("event=%d", ev.EventID)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Layer"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Candidates (tmp)"}),
	)
	bar.SetXAxis(layers).AddSeries("beam size", sizes)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return fmt.Errorf("trackviz: render bar chart: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// renderChi2Histogram writes a PNG histogram of every accepted hit's χ²
// across the event.
func renderChi2Histogram(ev *trackdebug.EventDebug, path string) error {
	var values plotter.Values
	for _, g := range ev.Gathers {
		values = append(values, g.AcceptedChi2...)
	}
	if len(values) == 0 {
		values = plotter.Values{0}
	}

	p := plot.New()
	p.Title.Text = "Accepted hit chi2"
	p.X.Label.Text = "chi2"
	p.Y.Label.Text = "count"

	hist, err := plotter.NewHist(values, 16)
	if err != nil {
		return fmt.Errorf("trackviz: build histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("trackviz: save histogram: %w", err)
	}
	return nil
}
