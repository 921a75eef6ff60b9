package l1geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGeometry_StrictlyIncreasing(t *testing.T) {
	g, err := NewGeometry([]float64{4, 8, 12, 16})
	require.NoError(t, err)
	require.Equal(t, 4, g.NumLayers())
	require.Equal(t, 12.0, g.Radius(2))
}

func TestNewGeometry_RejectsNonIncreasing(t *testing.T) {
	_, err := NewGeometry([]float64{4, 8, 8, 16})
	require.Error(t, err)

	_, err = NewGeometry([]float64{4, 2})
	require.Error(t, err)
}

func TestNewGeometry_RejectsEmpty(t *testing.T) {
	_, err := NewGeometry(nil)
	require.Error(t, err)
}

func TestGeometry_RadiusPanicsOutOfRange(t *testing.T) {
	g, err := NewGeometry([]float64{4, 8})
	require.NoError(t, err)

	require.Panics(t, func() { g.Radius(2) })
	require.Panics(t, func() { g.Radius(-1) })
}
