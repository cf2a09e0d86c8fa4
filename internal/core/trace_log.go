package core

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// JSONTraceEntry is one completed span, written as a single JSON line.
type JSONTraceEntry struct {
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	DurationMS float64   `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}

// JSONTraceTracer records service spans as JSON lines. Finished spans
// are also retained in memory so callers can inspect them.
type JSONTraceTracer struct {
	mu      sync.Mutex
	out     io.Writer
	entries []JSONTraceEntry
}

// NewJSONTracer builds a tracer writing to w. A nil writer keeps spans
// in memory only.
func NewJSONTracer(w io.Writer) *JSONTraceTracer {
	return &JSONTraceTracer{out: w}
}

// Start implements Tracer.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &traceLogSpan{
		tracer:    t,
		operation: operation,
		startedAt: time.Now().UTC(),
	}
}

// Entries returns the finished spans recorded so far.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]JSONTraceEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *JSONTraceTracer) record(entry JSONTraceEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, entry)
	if t.out == nil {
		return
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = t.out.Write(append(line, '\n'))
}

type traceLogSpan struct {
	tracer    *JSONTraceTracer
	operation string
	startedAt time.Time
}

func (s *traceLogSpan) End(err error) {
	endedAt := time.Now().UTC()
	entry := JSONTraceEntry{
		Operation:  s.operation,
		Status:     "success",
		DurationMS: float64(endedAt.Sub(s.startedAt)) / float64(time.Millisecond),
		StartedAt:  s.startedAt,
		EndedAt:    endedAt,
	}
	if err != nil {
		entry.Status = "error"
		entry.Error = err.Error()
	}
	s.tracer.record(entry)
}
