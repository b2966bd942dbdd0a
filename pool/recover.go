// File: pool/recover.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Panic containment at the worker execution boundary.

package pool

import (
	"fmt"
	"runtime/debug"

	"github.com/momentics/hioload-async/api"
)

// ErrPanic is the error recorded in a work item's result slot when its
// closure panics. The worker goroutine survives; the failure travels to
// the polling side through the item like any other error.
type ErrPanic struct {
	Value any
	Stack []byte
}

func (e *ErrPanic) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the value passed to panic when it was an error.
func (e *ErrPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// runProtected executes the item's closure, converting a panic into an
// *ErrPanic carrying the recovered value and stack.
func runProtected(item *api.WorkItem) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrPanic{Value: r, Stack: debug.Stack()}
		}
	}()
	return item.Run()
}
