package trackdebug

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCollector_DisabledByDefaultRecordsNothing(t *testing.T) {
	c := NewCollector()
	c.BeginEvent(1)
	c.RecordBuildStep(0, 5, 3)
	c.RecordGather(uuid.New(), 0, []int{1, 2}, []int{1}, []float64{0.5}, 0.1, 0.1, 0, 1, 0, 1)

	ev := c.Emit()
	require.Empty(t, ev.BuildSteps)
	require.Empty(t, ev.Gathers)
}

func TestCollector_EnabledCapturesRecords(t *testing.T) {
	c := NewCollector()
	c.SetEnabled(true)
	c.BeginEvent(42)
	c.RecordBuildStep(2, 7, 9)
	seedID := uuid.New()
	c.RecordGather(seedID, 2, []int{3, 4, 5}, []int{4}, []float64{1.2}, 0.2, 0.3, 1, 2, 0, 0)

	ev := c.Emit()
	require.Equal(t, uint64(42), ev.EventID)
	require.Len(t, ev.BuildSteps, 1)
	require.Equal(t, BuildStepRecord{Layer: 2, NTmp: 7, NPrev: 9}, ev.BuildSteps[0])
	require.Len(t, ev.Gathers, 1)
	require.Equal(t, seedID, ev.Gathers[0].SeedID)
}

func TestCollector_ResetClearsButKeepsEnabled(t *testing.T) {
	c := NewCollector()
	c.SetEnabled(true)
	c.BeginEvent(1)
	c.RecordBuildStep(0, 1, 1)
	c.Reset()

	ev := c.Emit()
	require.Empty(t, ev.BuildSteps)
	require.True(t, c.IsEnabled())
}

func TestCollector_NilSafeForUnconfiguredSink(t *testing.T) {
	var c *Collector
	require.NotPanics(t, func() {
		c.RecordBuildStep(0, 1, 1)
		c.RecordGather(uuid.New(), 0, nil, nil, nil, 0, 0, 0, 0, 0, 0)
	})
}
