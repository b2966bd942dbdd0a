// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Descriptor watching contract backed by the readiness reactor.

package api

// Watcher registers interest in stream-class file descriptors and drains
// their readable bytes. Implemented by the Runtime over the reactor.
//
// Only stream-class descriptors (sockets, pipes) are watchable; the OS
// readiness multiplexer does not support regular files. Watching one is a
// configuration error reported synchronously by Watch, never a hang.
// Regular files are read through the worker pool offload path instead.
type Watcher interface {
	// Watch registers fd with the readiness multiplexer and switches it to
	// non-blocking mode.
	Watch(fd uintptr) error

	// Unwatch removes a previously registered fd.
	Unwatch(fd uintptr) error

	// Drain performs one non-blocking read from fd into p. It returns the
	// number of bytes read; eof is true at end-of-stream. n == 0 with
	// eof == false and a nil error means no bytes are currently available.
	Drain(fd uintptr, p []byte) (n int, eof bool, err error)

	// CloseFD closes the descriptor. Stream tasks close their descriptor
	// on end-of-stream and on cancellation.
	CloseFD(fd uintptr) error
}
