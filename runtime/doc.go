// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package runtime aggregates the worker pool, the reactor and the shared
// completion-signal channel into one explicitly constructed Runtime, and
// provides the Drive executor loop that polls a root task to completion
// without busy-spinning.
//
// A Runtime is typically one per process, created by the caller and passed
// down; there is no hidden global instance.
package runtime
