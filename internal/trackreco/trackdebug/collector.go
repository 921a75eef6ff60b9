package trackdebug

import (
	"sync"

	"github.com/google/uuid"
)

// BuildStepRecord is one build-step observation: the beam size before
// and after processing a layer.
type BuildStepRecord struct {
	Layer int
	NTmp  int
	NPrev int
}

// GatherRecord is the optional per-seed/per-layer branching record: the
// hit indices the Segment Index gathered, the subset that passed χ², the
// window sizes that produced them, and the bin rectangle that was
// walked.
type GatherRecord struct {
	SeedID     uuid.UUID
	Layer      int
	Gathered   []int
	Accepted   []int
	// AcceptedChi2 holds the per-hit χ² of each entry in Accepted, in
	// the same order, so cmd/trackviz can histogram accepted-hit χ²
	// without the builder exposing anything beyond this sink.
	AcceptedChi2 []float64
	NSigmaDPhi   float64
	NSigmaDEta   float64
	PhiBinMin    int
	PhiBinMax    int
	EtaBinMin    int
	EtaBinMax    int
}

// EventDebug is a single event's captured diagnostics, returned by
// Emit. cmd/trackviz reads this to render beam-size and χ² reports.
type EventDebug struct {
	EventID    uint64
	BuildSteps []BuildStepRecord
	Gathers    []GatherRecord
}

const defaultStepCapacity = 256

// Collector is the thread-safe validation sink the builder calls into.
// It is disabled by default; Record* calls are no-ops until SetEnabled
// is called, so the validation path costs nothing when off.
type Collector struct {
	mu      sync.Mutex
	enabled bool
	eventID uint64
	steps   []BuildStepRecord
	gathers []GatherRecord
}

// NewCollector returns a disabled Collector.
func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

func (c *Collector) IsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// BeginEvent sets the event ID and, when the collector is enabled,
// resets its buffers for a new event, pre-sizing them to avoid
// reallocation during a typical event's record volume. When disabled it
// leaves the buffers as they are.
func (c *Collector) BeginEvent(eventID uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventID = eventID
	if !c.enabled {
		return
	}
	c.steps = make([]BuildStepRecord, 0, defaultStepCapacity)
	c.gathers = make([]GatherRecord, 0, defaultStepCapacity)
}

// RecordBuildStep is the per-layer build-step hook: called once per
// (candidate-processing, layer) after tmp generation.
func (c *Collector) RecordBuildStep(layer, nTmp, nPrev int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.steps = append(c.steps, BuildStepRecord{Layer: layer, NTmp: nTmp, NPrev: nPrev})
}

// RecordGather captures one candidate's window/gather/accept outcome on
// one layer. Callers need not copy gathered/accepted/acceptedChi2:
// RecordGather stores its own copies, so the caller may reuse them.
func (c *Collector) RecordGather(seedID uuid.UUID, layer int, gathered, accepted []int, acceptedChi2 []float64, nSigmaDPhi, nSigmaDEta float64, phiBinMin, phiBinMax, etaBinMin, etaBinMax int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.gathers = append(c.gathers, GatherRecord{
		SeedID:       seedID,
		Layer:        layer,
		Gathered:     append([]int(nil), gathered...),
		Accepted:     append([]int(nil), accepted...),
		AcceptedChi2: append([]float64(nil), acceptedChi2...),
		NSigmaDPhi:   nSigmaDPhi,
		NSigmaDEta:   nSigmaDEta,
		PhiBinMin:    phiBinMin,
		PhiBinMax:    phiBinMax,
		EtaBinMin:    etaBinMin,
		EtaBinMax:    etaBinMax,
	})
}

// Emit snapshots the current event's captured diagnostics.
func (c *Collector) Emit() *EventDebug {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &EventDebug{
		EventID:    c.eventID,
		BuildSteps: append([]BuildStepRecord(nil), c.steps...),
		Gathers:    append([]GatherRecord(nil), c.gathers...),
	}
}

// Reset clears captured diagnostics without changing the enabled flag.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.steps = nil
	c.gathers = nil
}
