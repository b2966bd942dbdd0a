// File: task/join.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// The join combinator: N tasks in, one task of the ordered results out.

package task

import (
	"errors"
	"fmt"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-async/api"
)

// joinTask completes when every child task has completed. Children are
// tracked through a FIFO ring of not-yet-completed indices: each poll
// rotates the ring exactly once, so every pending child is visited in index
// order and completed children are never polled again. Results are cached
// by index, preserving input order regardless of completion order.
//
// Error policy is collect-all: the combinator waits for every child and
// then reports either the full value slice or an error joining each failed
// child's error, tagged with its index.
type joinTask[T any] struct {
	tasks   []api.Task[T]
	pending *queue.Queue
	values  []T
	errs    []error
	done    bool
	result  api.Poll[[]T]
}

// Join combines tasks into one task producing their results in input
// order. Joining zero tasks completes immediately with an empty slice.
func Join[T any](tasks ...api.Task[T]) api.Task[[]T] {
	t := &joinTask[T]{
		tasks:   tasks,
		pending: queue.New(),
		values:  make([]T, len(tasks)),
		errs:    make([]error, len(tasks)),
	}
	for i := range tasks {
		t.pending.Add(i)
	}
	return t
}

func (t *joinTask[T]) Poll() api.Poll[[]T] {
	if t.done {
		return t.result
	}
	// One full rotation of the pending ring: indices stay in input order
	// among themselves, completed indices drop out.
	for n := t.pending.Length(); n > 0; n-- {
		idx := t.pending.Remove().(int)
		p := t.tasks[idx].Poll()
		if !p.IsReady() {
			t.pending.Add(idx)
			continue
		}
		t.values[idx] = p.Value()
		t.errs[idx] = p.Err()
	}
	if t.pending.Length() > 0 {
		return api.Pending[[]T]()
	}
	if err := t.collectErrs(); err != nil {
		return t.complete(api.Fail[[]T](err))
	}
	return t.complete(api.Ready(t.values))
}

// Cancel propagates to every not-yet-completed child.
func (t *joinTask[T]) Cancel() {
	if t.done {
		return
	}
	for n := t.pending.Length(); n > 0; n-- {
		idx := t.pending.Remove().(int)
		t.tasks[idx].Cancel()
	}
	t.complete(api.Fail[[]T](api.ErrCancelled))
}

func (t *joinTask[T]) collectErrs() error {
	var errs []error
	for i, err := range t.errs {
		if err != nil {
			errs = append(errs, fmt.Errorf("task %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (t *joinTask[T]) complete(p api.Poll[[]T]) api.Poll[[]T] {
	t.done = true
	t.result = p
	return p
}
