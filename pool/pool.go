// File: pool/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed worker pool with per-worker bounded queues. Submit dispatches work
// items through a pluggable selector with a fallback scan over the other
// queues; a worker executes items synchronously, captures panics into the
// item's result slot, and emits one completion signal per item.

package pool

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/control"
)

// DefaultQueueDepth bounds each worker's private queue when no explicit
// depth is configured. Unbounded queues grow without limit under sustained
// overload, so submission fails fast instead once every queue is full.
const DefaultQueueDepth = 64

// Options tunes pool construction.
type Options struct {
	// QueueDepth is the capacity of each worker's private queue.
	// Defaults to DefaultQueueDepth when <= 0.
	QueueDepth int

	// Selector picks the target worker for each submission.
	// Defaults to round-robin.
	Selector Selector

	// Logger receives worker fault reports. Defaults to the standard log
	// package.
	Logger control.Logger

	// Metrics receives pool counters. Defaults to a no-op sink.
	Metrics control.Metrics
}

// Pool is a fixed set of worker goroutines, each with a private bounded
// work item queue. The polling goroutine is the only producer; each worker
// is the only consumer of its own queue.
type Pool struct {
	queues   []chan *api.WorkItem
	notify   func(api.Signal)
	selector Selector
	logger   control.Logger
	metrics  control.Metrics
	wg       sync.WaitGroup
	closed   atomic.Bool
}

// New creates a pool of size workers. Completion signals are delivered
// through notify, one per executed item, tagged with the worker identity.
func New(workers int, notify func(api.Signal), opts Options) (*Pool, error) {
	if workers <= 0 {
		return nil, api.ErrInvalidWorkerCount
	}
	depth := opts.QueueDepth
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	sel := opts.Selector
	if sel == nil {
		sel = NewRoundRobin()
	}
	logger := opts.Logger
	if logger == nil {
		logger = control.DefaultLogger()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = control.NopMetrics{}
	}

	p := &Pool{
		queues:   make([]chan *api.WorkItem, workers),
		notify:   notify,
		selector: sel,
		logger:   logger,
		metrics:  metrics,
	}
	for i := range p.queues {
		p.queues[i] = make(chan *api.WorkItem, depth)
	}
	for i := range p.queues {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p, nil
}

// Submit enqueues item onto a worker chosen by the selector. When the
// chosen queue is full, every other queue is tried once before failing
// with api.ErrBacklogFull. Submit never blocks the calling goroutine.
func (p *Pool) Submit(item *api.WorkItem) error {
	if p.closed.Load() {
		return api.ErrPoolClosed
	}
	idx := p.selector.Pick(p.Loads())
	if idx < 0 || idx >= len(p.queues) {
		idx = 0
	}
	select {
	case p.queues[idx] <- item:
		p.metrics.ItemSubmitted(idx)
		return nil
	default:
	}
	// Chosen queue full: scan the remaining queues once.
	for i := range p.queues {
		if i == idx {
			continue
		}
		select {
		case p.queues[i] <- item:
			p.metrics.ItemSubmitted(i)
			return nil
		default:
		}
	}
	p.metrics.ItemRejected()
	return api.ErrBacklogFull
}

// NumWorkers returns the fixed worker count.
func (p *Pool) NumWorkers() int { return len(p.queues) }

// Loads reports the current depth of every worker queue, indexed by worker
// id. Used by the least-loaded selector and by metrics scrapers.
func (p *Pool) Loads() []int {
	loads := make([]int, len(p.queues))
	for i, q := range p.queues {
		loads[i] = len(q)
	}
	return loads
}

// Close shuts the pool down and waits for the workers to drain their
// queues and exit. Items still queued are executed; items submitted after
// Close fail with api.ErrPoolClosed.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	for _, q := range p.queues {
		close(q)
	}
	p.wg.Wait()
}

// worker is the per-worker loop: blocking-receive one item, execute it,
// publish the outcome, signal completion, repeat. A closed queue ends the
// loop.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	source := api.WorkerSource(id)
	for item := range p.queues[id] {
		if !item.Begin() {
			// Cancelled while queued; nobody is polling for it anymore.
			continue
		}
		err := runProtected(item)
		item.Finish(err)
		if err != nil {
			var pe *ErrPanic
			if errors.As(err, &pe) {
				// The panic is contained in the item's result slot; the
				// worker itself must survive or its queue stalls forever.
				p.logger.Error("worker recovered panic",
					control.F("worker", id), control.F("panic", pe.Value))
				p.metrics.ItemPanicked(id)
			}
		}
		p.metrics.ItemCompleted(id)
		p.notify(api.Signal{Source: source})
	}
}
