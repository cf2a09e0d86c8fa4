package core

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics and tracing backends are selected from the environment the
// same way storage drivers are:
//
//	MARKETCORE_METRICS_DRIVER: prometheus|expvar (default prometheus)
//	MARKETCORE_TRACE_PATH: JSON-lines span log file (empty disables)
const (
	MetricsDriverPrometheus = "prometheus"
	MetricsDriverExpvar     = "expvar"
)

// OpenMetricsRecorder selects the metrics backend. The registerer is
// only consulted for the Prometheus driver.
func OpenMetricsRecorder(reg prometheus.Registerer) (MetricsRecorder, error) {
	driver := os.Getenv("MARKETCORE_METRICS_DRIVER")
	if driver == "" {
		driver = MetricsDriverPrometheus
	}
	switch driver {
	case MetricsDriverPrometheus:
		return NewPrometheusMetricsRecorder(reg), nil
	case MetricsDriverExpvar:
		return NewExpvarMetricsRecorder(""), nil
	default:
		return nil, fmt.Errorf("unknown metrics driver %s", driver)
	}
}

// OpenTracer opens the span log named by MARKETCORE_TRACE_PATH. When
// the variable is unset tracing is disabled and the closer is nil.
func OpenTracer() (Tracer, io.Closer, error) {
	path := os.Getenv("MARKETCORE_TRACE_PATH")
	if path == "" {
		return nopTracer{}, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewJSONTracer(f), f, nil
}
