// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness multiplexer used for stream-class
// descriptor IO: a platform EventReactor abstraction (epoll on Linux) plus
// the monitor goroutine that converts readiness events into completion
// signals for the executor.
package reactor
