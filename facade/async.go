// File: facade/async.go
// Unified facade layer for the hioload-async runtime.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the one-import convenience surface over the runtime,
// task and api packages: construct a Runtime, spawn blocking or stream
// tasks, join them, and drive a root task to completion.

// Package facade bundles the hioload-async building blocks behind a small
// set of package-level helpers for callers that do not need to assemble
// the components themselves.
package facade

import (
	"context"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/runtime"
	"github.com/momentics/hioload-async/task"
)

// New constructs a Runtime with workers pool workers and default settings.
// The Runtime is explicit: create one per process and pass it down.
func New(workers int) (*runtime.Runtime, error) {
	return runtime.New(workers)
}

// Ready returns an already-completed task carrying v.
func Ready[T any](v T) api.Task[T] {
	return task.Ready(v)
}

// SpawnBlocking returns a task executing fn on the runtime's worker pool.
func SpawnBlocking[T any](rt *runtime.Runtime, fn func() (T, error)) api.Task[T] {
	return task.Blocking(rt, fn)
}

// SpawnStream returns a task reading the stream-class descriptor fd to
// end-of-stream through the runtime's reactor.
func SpawnStream(rt *runtime.Runtime, fd uintptr) api.Task[[]byte] {
	return task.Stream(rt, fd)
}

// ReadFile returns a task reading a regular file via worker pool offload.
func ReadFile(rt *runtime.Runtime, path string) api.Task[[]byte] {
	return task.ReadFile(rt, path)
}

// Join combines tasks into one task yielding their results in input order.
func Join[T any](tasks ...api.Task[T]) api.Task[[]T] {
	return task.Join(tasks...)
}

// Drive polls root to completion on the calling goroutine.
func Drive[T any](rt *runtime.Runtime, root api.Task[T]) (T, error) {
	return runtime.Drive(rt, root)
}

// DriveContext is Drive with context cancellation.
func DriveContext[T any](ctx context.Context, rt *runtime.Runtime, root api.Task[T]) (T, error) {
	return runtime.DriveContext(ctx, rt, root)
}
