// File: task/ready.go
// Author: momentics <momentics@gmail.com>
//
// Immediately completed tasks.

package task

import "github.com/momentics/hioload-async/api"

// readyTask is complete at construction; every poll returns the same
// result.
type readyTask[T any] struct {
	result api.Poll[T]
}

// Ready returns a task that is already complete with value v.
func Ready[T any](v T) api.Task[T] {
	return &readyTask[T]{result: api.Ready(v)}
}

// Err returns a task that is already complete with error err.
func Err[T any](err error) api.Task[T] {
	return &readyTask[T]{result: api.Fail[T](err)}
}

func (t *readyTask[T]) Poll() api.Poll[T] { return t.result }

func (t *readyTask[T]) Cancel() {}
