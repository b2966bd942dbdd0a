// File: api/work.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Work items submitted to the worker pool, and the Submitter contract.

package api

import "sync/atomic"

// WorkItem lifecycle states.
const (
	itemQueued int32 = iota
	itemRunning
	itemDone
	itemCancelled
)

// WorkItem is a closure destined for a pool worker, together with its
// result slot and lifecycle state. Ownership transfers to the worker on
// submission: exactly one worker executes a given item, exactly once.
//
// The typed result value lives in the closure's captured output slot; the
// item itself records only the execution error. The atomic state transition
// in Finish publishes the captured value to the polling goroutine.
type WorkItem struct {
	fn    func() error
	err   error
	state atomic.Int32
}

// NewWorkItem wraps fn into a submittable item.
func NewWorkItem(fn func() error) *WorkItem {
	return &WorkItem{fn: fn}
}

// Begin transitions the item from queued to running. It returns false when
// the item was cancelled before a worker picked it up, in which case the
// worker must skip execution entirely.
func (w *WorkItem) Begin() bool {
	return w.state.CompareAndSwap(itemQueued, itemRunning)
}

// Run executes the wrapped closure. Called by the worker, after Begin.
func (w *WorkItem) Run() error { return w.fn() }

// Finish records the execution outcome and marks the item done.
func (w *WorkItem) Finish(err error) {
	w.err = err
	w.state.Store(itemDone)
}

// Cancel marks a still-queued item cancelled so it is never executed.
// Returns false if the item is already running, done or cancelled.
func (w *WorkItem) Cancel() bool {
	return w.state.CompareAndSwap(itemQueued, itemCancelled)
}

// Completed reports whether the item finished executing.
func (w *WorkItem) Completed() bool { return w.state.Load() == itemDone }

// Cancelled reports whether the item was cancelled before execution.
func (w *WorkItem) Cancelled() bool { return w.state.Load() == itemCancelled }

// Err returns the execution error. Valid only after Completed.
func (w *WorkItem) Err() error { return w.err }

// Submitter schedules work items onto a worker pool.
type Submitter interface {
	// Submit enqueues the item onto some worker. It never blocks: when
	// every worker queue is full it fails fast with ErrBacklogFull.
	Submit(item *WorkItem) error
}
