// File: api/task.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The poll-based Task contract.

package api

// Task is a lazy, poll-based unit of deferred computation. Constructing a
// Task performs no work; all progress happens inside Poll.
//
// Poll must return immediately and never block the calling goroutine. A
// Task may have a side effect (submitting a work item, registering reactor
// interest) on its first Poll only; implementations guard it with an
// internal started flag so that repeated Pending polls never duplicate it.
//
// Once a Task has returned a Ready result, every further Poll returns the
// same Ready result again with no additional side effects.
//
// Tasks are exclusively owned: a Task is polled by exactly one goroutine,
// either the executor or a parent combinator, never concurrently.
type Task[T any] interface {
	// Poll advances the task as far as it can without blocking.
	Poll() Poll[T]

	// Cancel tears the task down before completion, releasing any
	// outstanding work item or reactor registration it owns. Cancelling a
	// completed or already cancelled task is a no-op.
	Cancel()
}
