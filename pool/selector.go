// File: pool/selector.go
// Author: momentics <momentics@gmail.com>
//
// Pluggable worker selection policies for Submit.

package pool

import "sync/atomic"

// Selector picks the target worker for one submission. Implementations
// must be safe for use from a single submitting goroutine; they may keep
// internal state across calls.
type Selector interface {
	// Pick returns the index of the worker to try first, given the current
	// queue depth of every worker.
	Pick(loads []int) int
}

// roundRobin cycles through workers regardless of load.
type roundRobin struct {
	next atomic.Uint64
}

// NewRoundRobin returns the default selection policy.
func NewRoundRobin() Selector {
	return &roundRobin{}
}

func (r *roundRobin) Pick(loads []int) int {
	if len(loads) == 0 {
		return 0
	}
	return int((r.next.Add(1) - 1) % uint64(len(loads)))
}

// leastLoaded picks the worker with the shortest queue, breaking ties by
// lowest index.
type leastLoaded struct{}

// NewLeastLoaded returns a selector preferring the emptiest queue.
func NewLeastLoaded() Selector {
	return leastLoaded{}
}

func (leastLoaded) Pick(loads []int) int {
	best := 0
	for i, l := range loads {
		if l < loads[best] {
			best = i
		}
	}
	return best
}
