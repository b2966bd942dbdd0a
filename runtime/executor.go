// File: runtime/executor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The executor drive loop: poll the root task, block on the completion
// signal channel, re-poll, until Ready.

package runtime

import (
	"context"

	"github.com/momentics/hioload-async/api"
)

// Drive polls root to completion and returns its value or error. Between
// Pending polls the calling goroutine performs a blocking receive on the
// Runtime's completion-signal channel, so a quiescent task graph costs no
// CPU.
//
// Signals are not routed: each wake re-polls the entire graph from the
// root. Combinators rescan their own pending children, trading a bounded
// amount of redundant polling for the absence of a signal-routing layer.
// Spurious wakes are therefore always safe.
//
// Drive is the only goroutine that polls, which enforces the
// single-threaded cooperative polling invariant by construction. A failing
// root task is an ordinary return value; Drive itself never panics on task
// failure.
func Drive[T any](rt *Runtime, root api.Task[T]) (T, error) {
	for {
		p := root.Poll()
		if p.IsReady() {
			return p.Value(), p.Err()
		}
		rt.block()
	}
}

// DriveContext is Drive with cancellation: when ctx closes, the root task
// is torn down (releasing its work items and reactor registrations) and
// ctx.Err() is returned.
func DriveContext[T any](ctx context.Context, rt *Runtime, root api.Task[T]) (T, error) {
	for {
		p := root.Poll()
		if p.IsReady() {
			return p.Value(), p.Err()
		}
		select {
		case <-ctx.Done():
			root.Cancel()
			var zero T
			return zero, ctx.Err()
		case <-rt.signals:
			rt.coalesce()
		}
	}
}

// block waits for the next completion signal, then drains whatever else
// is already buffered: one re-poll covers any number of progress events.
func (rt *Runtime) block() {
	<-rt.signals
	rt.coalesce()
}

func (rt *Runtime) coalesce() {
	for {
		select {
		case <-rt.signals:
		default:
			return
		}
	}
}
