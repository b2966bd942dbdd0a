// File: api/poll.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Tagged outcome of polling a Task once: Pending or Ready.

package api

// Poll is the result of a single Task poll. It is either Pending, carrying
// no payload, or Ready, carrying a value or an error. A failed computation
// is Ready with a non-nil error: errors travel through the same channel as
// success values, never as a distinct poll outcome.
//
// Pending must never be conflated with a legitimate zero value of T, which
// is why Poll is a tagged value rather than a nullable one.
type Poll[T any] struct {
	ready bool
	value T
	err   error
}

// Pending reports that the task has not completed yet.
func Pending[T any]() Poll[T] {
	return Poll[T]{}
}

// Ready wraps a completed value.
func Ready[T any](v T) Poll[T] {
	return Poll[T]{ready: true, value: v}
}

// Fail wraps a completed failure. The value is the zero value of T.
func Fail[T any](err error) Poll[T] {
	return Poll[T]{ready: true, err: err}
}

// IsReady reports whether the poll completed, successfully or not.
func (p Poll[T]) IsReady() bool { return p.ready }

// Value returns the completed value. Meaningful only when IsReady.
func (p Poll[T]) Value() T { return p.value }

// Err returns the completion error, nil on success or while Pending.
func (p Poll[T]) Err() error { return p.err }
