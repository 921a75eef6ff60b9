package l3state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHit_DerivedFields_RAndPhi(t *testing.T) {
	h := Hit{X: 3, Y: 4, Z: 0}
	require.InDelta(t, 5.0, h.R(), 1e-9)
	require.InDelta(t, math.Atan2(4, 3), h.Phi(), 1e-9)
}

func TestTrack_WithHit_DoesNotAliasHistory(t *testing.T) {
	base := Track{Hits: []HitRef{{Layer: 0, Index: 1, Chi2: 1}}, Chi2: 1}
	a := base.WithHit(1, 2, 2)
	b := base.WithHit(1, 3, 5)

	require.Equal(t, 1, base.NHits())
	require.Equal(t, 2, a.NHits())
	require.Equal(t, 2, b.NHits())
	require.InDelta(t, 3.0, a.Chi2, 1e-9)
	require.InDelta(t, 6.0, b.Chi2, 1e-9)
	require.NotEqual(t, a.Hits[1].Index, b.Hits[1].Index)
}

func TestBetter_PrefersMoreHitsThenLowerChi2(t *testing.T) {
	a := Candidate{Track: Track{Hits: make([]HitRef, 3), Chi2: 10}}
	b := Candidate{Track: Track{Hits: make([]HitRef, 2), Chi2: 1}}
	require.True(t, Better(a, b))
	require.False(t, Better(b, a))

	c := Candidate{Track: Track{Hits: make([]HitRef, 2), Chi2: 5}}
	d := Candidate{Track: Track{Hits: make([]HitRef, 2), Chi2: 1}}
	require.True(t, Better(d, c))
}
