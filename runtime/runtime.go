// File: runtime/runtime.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The Runtime aggregate: worker pool + reactor + completion-signal fan-in.

package runtime

import (
	"errors"
	"sync"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/control"
	"github.com/momentics/hioload-async/pool"
	"github.com/momentics/hioload-async/reactor"
)

// Config holds parameters immutable per Runtime.
type Config struct {
	// Workers is the fixed worker pool size. Must be positive.
	Workers int

	// QueueDepth bounds each worker's private queue.
	// Defaults to pool.DefaultQueueDepth.
	QueueDepth int

	// SignalBuffer is the capacity of the shared completion-signal
	// channel. Defaults to 128. Producers never block on it: a signal that
	// finds the buffer full is dropped, which is safe because a full
	// buffer already guarantees the executor will wake and re-poll.
	SignalBuffer int

	// Selector picks target workers for submissions. Defaults to
	// round-robin.
	Selector pool.Selector

	// DisableReactor skips reactor construction; Watch then fails with
	// api.ErrReactorUnavailable.
	DisableReactor bool

	// Logger and Metrics default to the stdlib logger and a no-op sink.
	Logger  control.Logger
	Metrics control.Metrics
}

// DefaultConfig returns the defaults for a pool of workers.
func DefaultConfig(workers int) Config {
	return Config{
		Workers:      workers,
		QueueDepth:   pool.DefaultQueueDepth,
		SignalBuffer: 128,
	}
}

// Runtime owns the worker pool, the reactor and the receiving end of the
// shared completion-signal channel. All background progress funnels into
// that one channel: workers and the reactor monitor are the producers, the
// driving goroutine is the only consumer.
//
// Runtime implements api.Submitter and api.Watcher, so tasks depend on the
// contracts only.
type Runtime struct {
	pool    *pool.Pool
	reactor *reactor.Reactor
	signals chan api.Signal
	logger  control.Logger
	metrics control.Metrics

	closed    chan struct{}
	closeOnce sync.Once
}

// New creates a Runtime with workers pool workers and default settings.
func New(workers int) (*Runtime, error) {
	return NewWithConfig(DefaultConfig(workers))
}

// NewWithConfig creates a Runtime from an explicit Config. On platforms
// without a readiness multiplexer the Runtime degrades to worker pool
// offload only; every other construction failure is returned.
func NewWithConfig(cfg Config) (*Runtime, error) {
	if cfg.Workers <= 0 {
		return nil, api.ErrInvalidWorkerCount
	}
	buffer := cfg.SignalBuffer
	if buffer <= 0 {
		buffer = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = control.DefaultLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = control.NopMetrics{}
	}

	rt := &Runtime{
		signals: make(chan api.Signal, buffer),
		logger:  logger,
		metrics: metrics,
		closed:  make(chan struct{}),
	}

	var err error
	rt.pool, err = pool.New(cfg.Workers, rt.notify, pool.Options{
		QueueDepth: cfg.QueueDepth,
		Selector:   cfg.Selector,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return nil, err
	}

	if !cfg.DisableReactor {
		rt.reactor, err = reactor.New(rt.notify, reactor.Options{Logger: logger})
		if err != nil {
			if !errors.Is(err, api.ErrReactorUnavailable) {
				rt.pool.Close()
				return nil, err
			}
			logger.Info("reactor unavailable, stream tasks disabled")
			rt.reactor = nil
		}
	}
	return rt, nil
}

// Submit implements api.Submitter on the worker pool.
func (rt *Runtime) Submit(item *api.WorkItem) error {
	select {
	case <-rt.closed:
		return api.ErrRuntimeClosed
	default:
	}
	return rt.pool.Submit(item)
}

// Watch implements api.Watcher on the reactor.
func (rt *Runtime) Watch(fd uintptr) error {
	if rt.reactor == nil {
		return api.ErrReactorUnavailable
	}
	return rt.reactor.Watch(fd)
}

// Unwatch implements api.Watcher on the reactor.
func (rt *Runtime) Unwatch(fd uintptr) error {
	if rt.reactor == nil {
		return api.ErrReactorUnavailable
	}
	return rt.reactor.Unwatch(fd)
}

// Drain implements api.Watcher on the reactor.
func (rt *Runtime) Drain(fd uintptr, p []byte) (int, bool, error) {
	if rt.reactor == nil {
		return 0, false, api.ErrReactorUnavailable
	}
	return rt.reactor.Drain(fd, p)
}

// CloseFD implements api.Watcher on the reactor.
func (rt *Runtime) CloseFD(fd uintptr) error {
	if rt.reactor == nil {
		return api.ErrReactorUnavailable
	}
	return rt.reactor.CloseFD(fd)
}

// NumWorkers returns the fixed pool size.
func (rt *Runtime) NumWorkers() int { return rt.pool.NumWorkers() }

// Loads reports current per-worker queue depths.
func (rt *Runtime) Loads() []int { return rt.pool.Loads() }

// Close tears the Runtime down: the reactor monitor is stopped first so no
// further io signals are produced, then the pool drains and joins its
// workers. Close is idempotent.
func (rt *Runtime) Close() error {
	var err error
	rt.closeOnce.Do(func() {
		close(rt.closed)
		if rt.reactor != nil {
			err = rt.reactor.Close()
		}
		rt.pool.Close()
	})
	return err
}

// notify is the many-producer fan-in: a non-blocking send into the shared
// signal channel. Signals are liveness hints; one that finds the buffer
// full is coalesced into the wake the full buffer already guarantees.
func (rt *Runtime) notify(sig api.Signal) {
	rt.metrics.SignalEmitted(sig.Source)
	select {
	case rt.signals <- sig:
	default:
		rt.metrics.SignalDropped()
	}
}
