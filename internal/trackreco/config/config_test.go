package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidate_RejectsLinearInterpWithMultipleWorkers(t *testing.T) {
	c := DefaultConfig()
	c.LinearInterp = true
	c.NumWorkers = 4
	err := c.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrLinearInterpNotSerializable))
}

func TestValidate_AllowsLinearInterpSingleWorker(t *testing.T) {
	c := DefaultConfig()
	c.LinearInterp = true
	c.NumWorkers = 1
	require.NoError(t, c.Validate())
}

func TestValidate_RejectsSeedLayerMismatch(t *testing.T) {
	c := DefaultConfig()
	c.NLayersPerSeed = c.NLayers + 1
	err := c.Validate()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrSeedLayerMismatch))
}

func TestValidate_RejectsNonPositiveChi2Cut(t *testing.T) {
	c := DefaultConfig()
	c.Chi2Cut = 0
	require.Error(t, c.Validate())
}
