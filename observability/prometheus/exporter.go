// File: observability/prometheus/exporter.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Prometheus adapter for the runtime's control.Metrics contract.

// Package prometheus adapts runtime counters onto Prometheus collectors.
// The exporter is optional: the runtime itself depends only on the
// control.Metrics interface.
package prometheus

import (
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-async/control"
)

// Exporter implements control.Metrics over Prometheus collectors.
type Exporter struct {
	itemsSubmitted *prom.CounterVec
	itemsCompleted *prom.CounterVec
	itemsPanicked  *prom.CounterVec
	itemsRejected  prom.Counter
	signals        *prom.CounterVec
	signalsDropped prom.Counter
}

var _ control.Metrics = (*Exporter)(nil)

// NewExporter creates and registers the runtime collectors on reg. An
// empty namespace defaults to "hioload_async"; a nil reg registers on the
// default registerer.
func NewExporter(namespace string, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = "hioload_async"
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	e := &Exporter{
		itemsSubmitted: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_submitted_total",
			Help:      "Work items enqueued, by worker.",
		}, []string{"worker"}),
		itemsCompleted: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_completed_total",
			Help:      "Work items executed, by worker.",
		}, []string{"worker"}),
		itemsPanicked: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_panicked_total",
			Help:      "Panics contained at the worker boundary, by worker.",
		}, []string{"worker"}),
		itemsRejected: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "work_items_rejected_total",
			Help:      "Submissions that found every worker queue full.",
		}),
		signals: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "completion_signals_total",
			Help:      "Completion signals emitted, by source.",
		}, []string{"source"}),
		signalsDropped: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "completion_signals_dropped_total",
			Help:      "Signals coalesced because the buffer was full.",
		}),
	}

	collectors := []prom.Collector{
		e.itemsSubmitted, e.itemsCompleted, e.itemsPanicked,
		e.itemsRejected, e.signals, e.signalsDropped,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Exporter) ItemSubmitted(worker int) {
	e.itemsSubmitted.WithLabelValues(strconv.Itoa(worker)).Inc()
}

func (e *Exporter) ItemCompleted(worker int) {
	e.itemsCompleted.WithLabelValues(strconv.Itoa(worker)).Inc()
}

func (e *Exporter) ItemPanicked(worker int) {
	e.itemsPanicked.WithLabelValues(strconv.Itoa(worker)).Inc()
}

func (e *Exporter) ItemRejected() {
	e.itemsRejected.Inc()
}

func (e *Exporter) SignalEmitted(source string) {
	e.signals.WithLabelValues(source).Inc()
}

func (e *Exporter) SignalDropped() {
	e.signalsDropped.Inc()
}
