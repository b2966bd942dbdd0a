package prometheus

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestQueueDepthCollectorSamplesOnScrape(t *testing.T) {
	loads := []int{3, 0}
	c := NewQueueDepthCollector("ns", func() []int { return loads })

	expect := func(text string) {
		t.Helper()
		if err := testutil.CollectAndCompare(c, strings.NewReader(text),
			"ns_worker_queue_depth"); err != nil {
			t.Fatal(err)
		}
	}

	expect(`
# HELP ns_worker_queue_depth Current depth of each worker's private queue.
# TYPE ns_worker_queue_depth gauge
ns_worker_queue_depth{worker="0"} 3
ns_worker_queue_depth{worker="1"} 0
`)

	// The next scrape must see the new depths, not cached ones.
	loads = []int{7, 1}
	expect(`
# HELP ns_worker_queue_depth Current depth of each worker's private queue.
# TYPE ns_worker_queue_depth gauge
ns_worker_queue_depth{worker="0"} 7
ns_worker_queue_depth{worker="1"} 1
`)
}
