// Package tracklog is the core's ambient logging surface: three
// independent, nil-able io.Writer streams (ops/diag/trace). No
// structured-logging library is pulled in for this concern; plain
// stdlib log suffices for three severity-separated writers.
package tracklog

import (
	"fmt"
	"io"
	"log"
	"sync"
)

// Level names a logging stream.
type Level int

const (
	// Ops routes actionable warnings/errors and lifecycle events: beam
	// exhaustion, seed retirement, fatal config/invariant errors.
	Ops Level = iota
	// Diag routes day-to-day diagnostics: per-layer beam-size summaries.
	Diag
	// Trace routes high-frequency per-candidate telemetry: propagation
	// failures, rejected hits, gather-window sizes.
	Trace
)

// Writers holds the io.Writer for each logging stream.
type Writers struct {
	Ops   io.Writer
	Diag  io.Writer
	Trace io.Writer
}

var (
	mu          sync.RWMutex
	opsLogger   *log.Logger
	diagLogger  *log.Logger
	traceLogger *log.Logger
)

// SetWriters configures all three logging streams at once. A nil
// writer disables that stream.
func SetWriters(w Writers) {
	mu.Lock()
	defer mu.Unlock()
	opsLogger = newLogger(w.Ops)
	diagLogger = newLogger(w.Diag)
	traceLogger = newLogger(w.Trace)
}

// SetWriter configures a single logging stream. A nil writer disables it.
func SetWriter(level Level, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	switch level {
	case Ops:
		opsLogger = newLogger(w)
	case Diag:
		diagLogger = newLogger(w)
	case Trace:
		traceLogger = newLogger(w)
	default:
		panic(fmt.Sprintf("tracklog.SetWriter: unknown Level %d", level))
	}
}

func newLogger(w io.Writer) *log.Logger {
	if w == nil {
		return nil
	}
	return log.New(w, "[trackcore] ", log.LstdFlags|log.Lmicroseconds)
}

// Opsf logs to the ops stream.
func Opsf(format string, args ...interface{}) {
	mu.RLock()
	l := opsLogger
	mu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}

// Diagf logs to the diag stream.
func Diagf(format string, args ...interface{}) {
	mu.RLock()
	l := diagLogger
	mu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}

// Tracef logs to the trace stream.
func Tracef(format string, args ...interface{}) {
	mu.RLock()
	l := traceLogger
	mu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}
