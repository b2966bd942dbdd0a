// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics contract plus an atomic in-process registry.

package control

import "sync/atomic"

// Metrics receives runtime counters. Implementations must be safe for
// concurrent use; workers, the reactor monitor and the polling goroutine
// all report through the same sink.
type Metrics interface {
	// ItemSubmitted records one work item enqueued for worker id.
	ItemSubmitted(worker int)
	// ItemCompleted records one work item executed by worker id.
	ItemCompleted(worker int)
	// ItemPanicked records one panic contained at worker id's boundary.
	ItemPanicked(worker int)
	// ItemRejected records one submission that found every queue full.
	ItemRejected()
	// SignalEmitted records one completion signal from the given source.
	SignalEmitted(source string)
	// SignalDropped records one coalesced signal (channel already full).
	SignalDropped()
}

// NopMetrics discards all counters.
type NopMetrics struct{}

func (NopMetrics) ItemSubmitted(int)    {}
func (NopMetrics) ItemCompleted(int)    {}
func (NopMetrics) ItemPanicked(int)     {}
func (NopMetrics) ItemRejected()        {}
func (NopMetrics) SignalEmitted(string) {}
func (NopMetrics) SignalDropped()       {}

// Registry is an in-process Metrics sink built on atomic counters, with a
// point-in-time snapshot for scrapers and tests.
type Registry struct {
	submitted atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
	rejected  atomic.Int64
	ioSignals atomic.Int64
	wkSignals atomic.Int64
	dropped   atomic.Int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) ItemSubmitted(int) { r.submitted.Add(1) }
func (r *Registry) ItemCompleted(int) { r.completed.Add(1) }
func (r *Registry) ItemPanicked(int)  { r.panicked.Add(1) }
func (r *Registry) ItemRejected()     { r.rejected.Add(1) }

func (r *Registry) SignalEmitted(source string) {
	if source == "io" {
		r.ioSignals.Add(1)
		return
	}
	r.wkSignals.Add(1)
}

func (r *Registry) SignalDropped() { r.dropped.Add(1) }

// Snapshot returns the current counter values.
func (r *Registry) Snapshot() map[string]int64 {
	return map[string]int64{
		"items_submitted": r.submitted.Load(),
		"items_completed": r.completed.Load(),
		"items_panicked":  r.panicked.Load(),
		"items_rejected":  r.rejected.Load(),
		"signals_io":      r.ioSignals.Load(),
		"signals_worker":  r.wkSignals.Load(),
		"signals_dropped": r.dropped.Load(),
	}
}
