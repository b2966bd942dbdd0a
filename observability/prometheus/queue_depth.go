// File: observability/prometheus/queue_depth.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-worker queue depth gauge collected on scrape.

package prometheus

import (
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
)

// queueDepthCollector reports the current depth of every worker queue at
// scrape time. The loads function is sampled on each Collect, so the gauge
// never lags behind the pool.
type queueDepthCollector struct {
	desc  *prom.Desc
	loads func() []int
}

// NewQueueDepthCollector builds a collector over loads, which must return
// the current per-worker queue depths (runtime.Runtime.Loads). An empty
// namespace defaults to "hioload_async". Register the collector on the
// same registerer as the Exporter.
func NewQueueDepthCollector(namespace string, loads func() []int) prom.Collector {
	if namespace == "" {
		namespace = "hioload_async"
	}
	return &queueDepthCollector{
		desc: prom.NewDesc(
			prom.BuildFQName(namespace, "", "worker_queue_depth"),
			"Current depth of each worker's private queue.",
			[]string{"worker"}, nil,
		),
		loads: loads,
	}
}

func (c *queueDepthCollector) Describe(ch chan<- *prom.Desc) {
	ch <- c.desc
}

func (c *queueDepthCollector) Collect(ch chan<- prom.Metric) {
	for i, depth := range c.loads() {
		ch <- prom.MustNewConstMetric(
			c.desc, prom.GaugeValue, float64(depth), strconv.Itoa(i),
		)
	}
}
