package tracklog

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestExplicitStreams(t *testing.T) {
	defer resetLoggers()

	tests := []struct {
		name         string
		setupLogger  bool
		logFunc      func(string, ...interface{})
		format       string
		args         []interface{}
		wantContains string
		wantEmpty    bool
	}{
		{
			name:         "Opsf with logger enabled",
			setupLogger:  true,
			logFunc:      Opsf,
			format:       "beam exhausted at layer %d",
			args:         []interface{}{7},
			wantContains: "beam exhausted at layer 7",
		},
		{
			name:         "Diagf with logger enabled",
			setupLogger:  true,
			logFunc:      Diagf,
			format:       "layer %d: %d candidates after step",
			args:         []interface{}{3, 12},
			wantContains: "layer 3: 12 candidates after step",
		},
		{
			name:         "Tracef with logger enabled",
			setupLogger:  true,
			logFunc:      Tracef,
			format:       "hit=%d rejected",
			args:         []interface{}{42},
			wantContains: "hit=42 rejected",
		},
		{
			name:        "Opsf with logger disabled",
			setupLogger: false,
			logFunc:     Opsf,
			format:      "this should not appear",
			args:        []interface{}{},
			wantEmpty:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			if tt.setupLogger {
				SetWriters(Writers{Ops: &buf, Diag: &buf, Trace: &buf})
			} else {
				SetWriters(Writers{})
			}

			tt.logFunc(tt.format, tt.args...)

			output := buf.String()
			if tt.wantEmpty {
				if len(output) > 0 {
					t.Errorf("expected no output, got: %q", output)
				}
			} else if !strings.Contains(output, tt.wantContains) {
				t.Errorf("output %q does not contain expected string %q", output, tt.wantContains)
			}
		})
	}
}

func TestSetWriters_PrefixAndIsolation(t *testing.T) {
	defer resetLoggers()

	var ops, diag, trace bytes.Buffer
	SetWriters(Writers{Ops: &ops, Diag: &diag, Trace: &trace})

	Opsf("ops event: %s", "retire")
	Diagf("diag event: %d", 42)
	Tracef("trace event: chi2=%.1f", 3.5)

	if !strings.Contains(ops.String(), "ops event: retire") {
		t.Errorf("Opsf output = %q", ops.String())
	}
	if !strings.Contains(diag.String(), "diag event: 42") {
		t.Errorf("Diagf output = %q", diag.String())
	}
	if !strings.Contains(trace.String(), "trace event: chi2=3.5") {
		t.Errorf("Tracef output = %q", trace.String())
	}

	for _, line := range strings.Split(strings.TrimSpace(ops.String()), "\n") {
		if !strings.Contains(line, "[trackcore] ") {
			t.Errorf("ops line missing [trackcore] prefix: %q", line)
		}
	}

	if strings.Contains(ops.String(), "diag event") || strings.Contains(ops.String(), "trace event") {
		t.Errorf("ops stream received non-ops messages: %q", ops.String())
	}
}

func TestNilWriterSafety(t *testing.T) {
	defer resetLoggers()

	SetWriters(Writers{})
	Opsf("should not panic: %s", "nil ops")
	Diagf("should not panic: %s", "nil diag")
	Tracef("should not panic: %s", "nil trace")

	var buf bytes.Buffer
	SetWriters(Writers{Ops: &buf})
	Opsf("ops ok")
	Diagf("silent")
	Tracef("silent")
}

func TestConcurrentStreamWrites(t *testing.T) {
	defer resetLoggers()

	var ops, diag, trace bytes.Buffer
	SetWriters(Writers{Ops: &ops, Diag: &diag, Trace: &trace})

	var wg sync.WaitGroup
	n := 50

	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			Opsf("ops %d", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			Diagf("diag %d", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			Tracef("trace %d", i)
		}
	}()
	wg.Wait()

	if ops.Len() == 0 {
		t.Error("expected ops output from concurrent writes")
	}
	if diag.Len() == 0 {
		t.Error("expected diag output from concurrent writes")
	}
	if trace.Len() == 0 {
		t.Error("expected trace output from concurrent writes")
	}
}

func resetLoggers() {
	mu.Lock()
	opsLogger = nil
	diagLogger = nil
	traceLogger = nil
	mu.Unlock()
}
