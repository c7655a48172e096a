// Package metrics provides a small, backend-agnostic abstraction for
// recording operational metrics from the catalog pipeline.
//
// It exposes a narrow counter/histogram interface (Backend) behind a global,
// pluggable backend that defaults to a no-op implementation, so metric calls
// are always safe even when nothing concrete is configured. Ingestion and the
// batch driver record through the helpers below without coupling to any
// specific metrics system.
package metrics

import "time"

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a latency/duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordRows increments a record-level counter for a dataset. Typical kinds
// are "committed" and "rejected".
func RecordRows(dataset, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter("catalog_records_total", float64(delta), Labels{
		"dataset": dataset,
		"kind":    kind,
	})
}

// RecordCommand measures one executed query command: a counter keyed by query
// id and success/failure, plus its latency.
func RecordCommand(query string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{
		"query":  query,
		"status": status,
	}
	backend.IncCounter("catalog_commands_total", 1, lbls)
	backend.ObserveHistogram("catalog_command_duration_seconds", d.Seconds(), lbls)
}
