package l8parallel

import (
	"sync"

	"github.com/heptrack/trackcore/internal/trackreco/l3state"
)

// ResultSink is the event's final-candidates vector: mutex-guarded
// append-only storage, the only piece of state either parallel strategy's
// workers mutate concurrently.
type ResultSink struct {
	mu     sync.Mutex
	tracks []l3state.Track
}

// Append pushes t onto the sink. Safe for concurrent use.
func (s *ResultSink) Append(t l3state.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks = append(s.tracks, t)
}

// Tracks returns a snapshot copy of every track appended so far.
func (s *ResultSink) Tracks() []l3state.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]l3state.Track(nil), s.tracks...)
}
