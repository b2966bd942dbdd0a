// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral event reactor interface and the monitor loop that turns
// readiness events into liveness signals.

package reactor

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/control"
)

// EventReactor defines the platform multiplexer operations.
type EventReactor interface {
	// Register adds a descriptor to the interest set.
	Register(fd uintptr) error

	// Unregister removes a descriptor from the interest set.
	Unregister(fd uintptr) error

	// Wait blocks until readiness events are available and writes them
	// into the output slice. A zero count with a nil error is legal and
	// means the wait was interrupted.
	Wait(events []Event) (n int, err error)

	// Wake interrupts a concurrent Wait call.
	Wake() error

	// Close releases the multiplexer instance.
	Close() error
}

// Event is one readiness notification returned by Wait.
type Event struct {
	Fd uintptr
}

// Options tunes reactor construction.
type Options struct {
	Logger control.Logger
}

// Reactor owns one EventReactor instance and a dedicated monitor goroutine
// blocking in Wait. Every batch of readiness events is reported as a single
// completion signal tagged "io"; signals are liveness hints, never routed
// to a specific descriptor or task.
type Reactor struct {
	er     EventReactor
	notify func(api.Signal)
	logger control.Logger

	mu      sync.Mutex
	watched map[uintptr]struct{}

	stopped atomic.Bool
	done    chan struct{}
}

// New creates a Reactor and starts its monitor goroutine. On platforms
// without a supported multiplexer it fails with api.ErrReactorUnavailable.
func New(notify func(api.Signal), opts Options) (*Reactor, error) {
	er, err := newPlatformReactor()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = control.DefaultLogger()
	}
	r := &Reactor{
		er:      er,
		notify:  notify,
		logger:  logger,
		watched: make(map[uintptr]struct{}),
		done:    make(chan struct{}),
	}
	go r.monitor()
	return r, nil
}

// Watch registers interest in fd. The descriptor must be stream-class
// (socket, pipe, character device); regular files are rejected with
// api.ErrUnsupportedDescriptor at call time. The descriptor is switched to
// non-blocking mode so that later drains never stall the polling goroutine.
//
// One synthetic io signal is emitted after registration: with an
// edge-triggered interest set, bytes buffered before Register would
// otherwise never produce an event.
func (r *Reactor) Watch(fd uintptr) error {
	if r.stopped.Load() {
		return api.ErrRuntimeClosed
	}
	if err := checkStream(fd); err != nil {
		return err
	}
	if err := setNonblock(fd); err != nil {
		return err
	}
	if err := r.er.Register(fd); err != nil {
		return err
	}
	r.mu.Lock()
	r.watched[fd] = struct{}{}
	r.mu.Unlock()

	r.emit()
	return nil
}

// Unwatch removes a registration. It is the teardown hook for cancelled
// stream tasks; a completion signal must never arrive for a descriptor
// nobody is polling anymore.
func (r *Reactor) Unwatch(fd uintptr) error {
	r.mu.Lock()
	_, ok := r.watched[fd]
	delete(r.watched, fd)
	r.mu.Unlock()
	if !ok {
		return api.ErrNotWatched
	}
	return r.er.Unregister(fd)
}

// Drain performs one non-blocking read from fd into p.
func (r *Reactor) Drain(fd uintptr, p []byte) (int, bool, error) {
	return drainFD(fd, p)
}

// CloseFD closes a stream descriptor once its task is done with it.
func (r *Reactor) CloseFD(fd uintptr) error {
	return closeFD(fd)
}

// Close stops the monitor goroutine and releases the multiplexer.
func (r *Reactor) Close() error {
	if !r.stopped.CompareAndSwap(false, true) {
		return nil
	}
	if err := r.er.Wake(); err != nil {
		r.logger.Error("reactor wake failed", control.F("err", err))
	}
	<-r.done
	return r.er.Close()
}

func (r *Reactor) emit() {
	r.notify(api.Signal{Source: api.SourceIO})
}

// monitor blocks in Wait and emits one io signal per readiness batch.
func (r *Reactor) monitor() {
	defer close(r.done)
	events := make([]Event, 128)
	for {
		n, err := r.er.Wait(events)
		if r.stopped.Load() {
			return
		}
		if err != nil {
			r.logger.Error("reactor wait failed", control.F("err", err))
			return
		}
		if n > 0 {
			r.emit()
		}
	}
}
