package l6segindex

import (
	"math"
	"sort"
	"testing"

	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"github.com/stretchr/testify/require"
)

func hitAtPhi(phi, r float64) l3state.Hit {
	return l3state.Hit{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: 0}
}

func TestNormalizedPhi_RangeAndWrap(t *testing.T) {
	require.InDelta(t, 0.0, NormalizedPhi(0), 1e-9)
	require.InDelta(t, -math.Pi+0.1, NormalizedPhi(math.Pi+0.1), 1e-9)
	require.InDelta(t, math.Pi-0.1, NormalizedPhi(-math.Pi-0.1), 1e-9)
}

func TestGetPhiBin_WrapsAtSeam(t *testing.T) {
	n := 8
	binNearPi := GetPhiBin(math.Pi-1e-6, n)
	binNearNegPi := GetPhiBin(-math.Pi+1e-6, n)
	require.Equal(t, n-1, binNearPi)
	require.Equal(t, 0, binNearNegPi)
}

func TestGetEtaBin_NonSegModeAlwaysZero(t *testing.T) {
	require.Equal(t, 0, GetEtaBin(1.9, 2.0, 10, false))
	require.Equal(t, 0, GetEtaBin(-1.9, 2.0, 10, false))
}

func TestGetEtaBin_ClampsToRange(t *testing.T) {
	require.Equal(t, 0, GetEtaBin(-100, 2.0, 10, true))
	require.Equal(t, 9, GetEtaBin(100, 2.0, 10, true))
}

func TestBuild_CellsPartitionHitsAndMatchBins(t *testing.T) {
	const nEta, nPhi = 4, 16
	const etaDet = 2.0

	hits := make([]l3state.Hit, 0, 200)
	for i := 0; i < 200; i++ {
		phi := -math.Pi + 2*math.Pi*float64(i)/200
		hits = append(hits, hitAtPhi(phi, 10))
	}

	sorted, idx, err := Build(hits, 3, nEta, nPhi, etaDet, true)
	require.NoError(t, err)
	require.Len(t, sorted, len(hits))

	total := 0
	for e := 0; e < nEta; e++ {
		for p := 0; p < nPhi; p++ {
			count := idx.CellCount(e, p)
			total += count
			start := idx.CellStart(e, p)
			for i := start; i < start+count; i++ {
				h := sorted[i]
				require.Equal(t, e, GetEtaBin(h.Eta(), etaDet, nEta, true))
				require.Equal(t, p, GetPhiBin(h.Phi(), nPhi))
				require.Equal(t, 3, h.LayerID)
				require.Equal(t, i, h.Index)
			}
		}
	}
	require.Equal(t, len(hits), total)
	require.Equal(t, len(hits), idx.First[nEta*nPhi])
}

func TestGather_ContiguousWindow(t *testing.T) {
	const nEta, nPhi = 1, 16
	hits := make([]l3state.Hit, 0, 160)
	for i := 0; i < 160; i++ {
		phi := -math.Pi + 2*math.Pi*float64(i)/160
		hits = append(hits, hitAtPhi(phi, 10))
	}
	sorted, idx, err := Build(hits, 0, nEta, nPhi, 2.0, false)
	require.NoError(t, err)

	got := idx.Gather(0, 0, 2, 5)
	require.Equal(t, idx.CellStart(0, 2), got[0])
	require.Len(t, got, idx.CellStart(0, 5)+idx.CellCount(0, 5)-idx.CellStart(0, 2))
	for _, i := range got {
		require.GreaterOrEqual(t, GetPhiBin(sorted[i].Phi(), nPhi), 2)
		require.LessOrEqual(t, GetPhiBin(sorted[i].Phi(), nPhi), 5)
	}
}

func TestGather_WraparoundUnionAtSeam(t *testing.T) {
	const nEta, nPhi = 1, 16
	hits := make([]l3state.Hit, 0, 320)
	for i := 0; i < 320; i++ {
		phi := -math.Pi + 2*math.Pi*float64(i)/320
		hits = append(hits, hitAtPhi(phi, 10))
	}
	sorted, idx, err := Build(hits, 0, nEta, nPhi, 2.0, false)
	require.NoError(t, err)

	// phiBinMin > phiBinMax signals a window crossing the seam.
	phiBinMin, phiBinMax := nPhi-2, 1
	got := idx.Gather(0, 0, phiBinMin, phiBinMax)

	expectedCount := idx.CellCount(0, nPhi-2) + idx.CellCount(0, nPhi-1) + idx.CellCount(0, 0) + idx.CellCount(0, 1)
	require.Len(t, got, expectedCount)

	sort.Ints(got)
	for _, i := range got {
		bin := GetPhiBin(sorted[i].Phi(), nPhi)
		require.True(t, bin >= phiBinMin || bin <= phiBinMax, "bin %d not in wrapped window", bin)
	}
}
