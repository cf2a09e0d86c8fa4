package core

import (
	"context"
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var expvarNameSeq atomic.Uint64

// OperationMetrics aggregates the outcomes of one service operation.
type OperationMetrics struct {
	Success int64   `json:"success"`
	Errors  int64   `json:"errors"`
	TotalMS float64 `json:"total_ms"`
}

// ExpvarMetricsSnapshot is the JSON shape served under /debug/vars.
type ExpvarMetricsSnapshot struct {
	Operations map[string]OperationMetrics `json:"operations"`
	RecordedAt time.Time                   `json:"recorded_at"`
}

// ExpvarMetricsRecorder keeps per-operation counters and publishes them
// through the process expvar page. It is the zero-dependency alternative
// to the Prometheus recorder for single-process deployments.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]*OperationMetrics
}

// NewExpvarMetricsRecorder publishes a recorder under name. An empty
// name gets a generated one, so repeated construction (tests, multiple
// services in one process) does not collide in the expvar registry.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("marketcore_metrics_%d", expvarNameSeq.Add(1))
	}
	rec := &ExpvarMetricsRecorder{
		name: name,
		ops:  make(map[string]*OperationMetrics),
	}
	expvar.Publish(name, expvar.Func(func() any { return rec.Snapshot() }))
	return rec
}

// Name reports the expvar key the recorder publishes under.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe implements MetricsRecorder.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := r.ops[operation]
	if stats == nil {
		stats = &OperationMetrics{}
		r.ops[operation] = stats
	}
	if success {
		stats.Success++
	} else {
		stats.Errors++
	}
	stats.TotalMS += float64(duration) / float64(time.Millisecond)
}

// Snapshot copies the aggregated counters.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make(map[string]OperationMetrics, len(r.ops))
	for op, stats := range r.ops {
		ops[op] = *stats
	}
	return ExpvarMetricsSnapshot{Operations: ops, RecordedAt: time.Now().UTC()}
}
