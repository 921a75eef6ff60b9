package l4propagate

import (
	"math"
	"testing"

	"github.com/heptrack/trackcore/internal/trackreco/l2linalg"
	"github.com/heptrack/trackcore/internal/trackreco/l3state"
	"github.com/stretchr/testify/require"
)

func straightState() l3state.TrackState {
	return l3state.TrackState{
		Params: l2linalg.Vec6{0, 0, 0, 1, 0, 0.2},
		Cov:    l2linalg.Identity6(),
		Valid:  true,
		Charge: 1,
	}
}

func TestPropagateHelixToR_StraightLineReachesRadius(t *testing.T) {
	p := DefaultParams()
	p.Kappa = 0 // force the straight-line branch regardless of charge

	out := PropagateHelixToR(straightState(), 10, p)
	require.True(t, out.Valid)
	r := math.Hypot(out.Params[0], out.Params[1])
	require.InDelta(t, 10.0, r, 1e-6)
	// pz/pt slope preserved: z = R * (pz/pt)
	require.InDelta(t, 10*0.2, out.Params[2], 1e-6)
}

func TestPropagateHelixToR_CurvedReachesRadius(t *testing.T) {
	p := DefaultParams()
	out := PropagateHelixToR(straightState(), 10, p)
	require.True(t, out.Valid)
	r := math.Hypot(out.Params[0], out.Params[1])
	require.InDelta(t, 10.0, r, 1e-6)

	pt := math.Hypot(out.Params[3], out.Params[4])
	require.InDelta(t, 1.0, pt, 1e-6) // |pt| conserved by a pure rotation
}

func TestPropagateHelixToR_UnreachableRadiusInvalid(t *testing.T) {
	p := DefaultParams()
	p.Kappa = 5.0 // tight curl: transverse circle radius = pt/kappa = 0.2, max reach is small

	out := PropagateHelixToR(straightState(), 1000, p)
	require.False(t, out.Valid)
}

func TestPropagateHelixToR_InvalidInputStaysInvalid(t *testing.T) {
	in := l3state.TrackState{Valid: false}
	out := PropagateHelixToR(in, 10, DefaultParams())
	require.False(t, out.Valid)
}

func TestPropagateHelixToR_CovarianceStaysSymmetric(t *testing.T) {
	s := straightState()
	s.Cov = l2linalg.Mat6{}
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			s.Cov[i*6+j] = 0.1 * float64(i+1) * float64(j+1)
		}
	}
	out := PropagateHelixToR(s, 10, DefaultParams())
	require.True(t, out.Valid)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			require.InDelta(t, out.Cov[i*6+j], out.Cov[j*6+i], 1e-9)
		}
	}
}

func TestPropagateHelixToR_ZeroTransverseMomentumInvalid(t *testing.T) {
	s := straightState()
	s.Params[3] = 0
	s.Params[4] = 0
	out := PropagateHelixToR(s, 10, DefaultParams())
	require.False(t, out.Valid)
}
