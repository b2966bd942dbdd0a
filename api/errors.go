// File: api/errors.go
// Author: momentics <momentics@gmail.com>
//
// Common error values used across the hioload-async runtime.

package api

import "errors"

var (
	// ErrRuntimeClosed indicates the runtime has been shut down.
	ErrRuntimeClosed = errors.New("runtime is closed")

	// ErrPoolClosed indicates the worker pool has been shut down.
	ErrPoolClosed = errors.New("worker pool is closed")

	// ErrBacklogFull indicates every worker queue is at capacity.
	ErrBacklogFull = errors.New("worker backlog full")

	// ErrCancelled is the result of a task torn down before completion.
	ErrCancelled = errors.New("task cancelled")

	// ErrInvalidWorkerCount indicates a non-positive worker count.
	ErrInvalidWorkerCount = errors.New("invalid worker count")

	// ErrNotWatched indicates an Unwatch of a descriptor that was never
	// registered.
	ErrNotWatched = errors.New("descriptor not watched")

	// ErrUnsupportedDescriptor indicates a Watch of a non-stream
	// descriptor class such as a regular file.
	ErrUnsupportedDescriptor = errors.New("descriptor class not supported by multiplexer")

	// ErrReactorUnavailable indicates the platform has no readiness
	// reactor; only worker pool offload is available.
	ErrReactorUnavailable = errors.New("reactor not available on this platform")
)
