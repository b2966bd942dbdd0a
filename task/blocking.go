// File: task/blocking.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker-pool-backed task for offloading blocking calls.

package task

import "github.com/momentics/hioload-async/api"

// blockingTask runs fn on a pool worker. The first poll submits exactly
// one work item; later polls observe the item's state without resubmitting.
// The typed value slot is written by the item's closure on the worker and
// published to the polling goroutine by the item's state transition.
type blockingTask[T any] struct {
	submitter api.Submitter
	fn        func() (T, error)
	item      *api.WorkItem
	value     T
	started   bool
	done      bool
	result    api.Poll[T]
}

// Blocking returns a task that executes fn on the submitter's worker pool.
// fn may block; it runs on a worker, never on the polling goroutine.
func Blocking[T any](s api.Submitter, fn func() (T, error)) api.Task[T] {
	return &blockingTask[T]{submitter: s, fn: fn}
}

func (t *blockingTask[T]) Poll() api.Poll[T] {
	if t.done {
		return t.result
	}
	if !t.started {
		t.started = true
		t.item = api.NewWorkItem(func() error {
			v, err := t.fn()
			if err != nil {
				return err
			}
			t.value = v
			return nil
		})
		if err := t.submitter.Submit(t.item); err != nil {
			// Submission failure is a task result, not a poll outcome.
			return t.complete(api.Fail[T](err))
		}
		return api.Pending[T]()
	}
	if !t.item.Completed() {
		return api.Pending[T]()
	}
	if err := t.item.Err(); err != nil {
		return t.complete(api.Fail[T](err))
	}
	return t.complete(api.Ready(t.value))
}

// Cancel releases the outstanding work item. An item still queued is
// flagged so its worker skips it; an item already running completes on the
// worker but its result is never observed.
func (t *blockingTask[T]) Cancel() {
	if t.done {
		return
	}
	if t.item != nil {
		t.item.Cancel()
	}
	t.complete(api.Fail[T](api.ErrCancelled))
}

func (t *blockingTask[T]) complete(p api.Poll[T]) api.Poll[T] {
	t.done = true
	t.result = p
	return p
}
