// Copyright (c) 2026
// Author: momentics <momentics@gmail.com>

// Package pool implements the fixed worker pool that executes blocking work
// items off the polling goroutine. Each worker consumes a private bounded
// queue and emits one completion signal per executed item.
package pool
