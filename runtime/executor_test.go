package runtime

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/control"
	"github.com/momentics/hioload-async/task"
)

// countingRoot stays pending until target polls have happened.
type countingRoot struct {
	polls     int
	target    int
	cancelled bool
}

func (c *countingRoot) Poll() api.Poll[int] {
	c.polls++
	if c.polls >= c.target {
		return api.Ready(c.polls)
	}
	return api.Pending[int]()
}

func (c *countingRoot) Cancel() { c.cancelled = true }

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	cfg := DefaultConfig(2)
	cfg.DisableReactor = true
	cfg.Logger = control.NopLogger{}
	rt, err := NewWithConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })
	return rt
}

func TestNewRejectsInvalidWorkerCount(t *testing.T) {
	_, err := New(0)
	require.ErrorIs(t, err, api.ErrInvalidWorkerCount)
}

func TestDriveReturnsReadyImmediately(t *testing.T) {
	rt := newTestRuntime(t)
	root := &countingRoot{target: 1}
	v, err := Drive(rt, root)
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

// Between two Pending polls the executor must block on the signal channel
// rather than spin: the total number of polls is bounded by one initial
// poll plus one per delivered signal.
func TestDriveBlocksBetweenPolls(t *testing.T) {
	rt := newTestRuntime(t)
	root := &countingRoot{target: 4}

	stop := make(chan struct{})
	defer close(stop)
	var sent atomic.Int32
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			time.Sleep(5 * time.Millisecond)
			sent.Add(1)
			rt.notify(api.Signal{Source: api.WorkerSource(0)})
		}
	}()

	v, err := Drive(rt, root)
	require.NoError(t, err)
	require.Equal(t, 4, v)
	require.LessOrEqual(t, root.polls, int(sent.Load())+1,
		"executor polled more often than it was woken: busy spin")
}

// Spurious signals never harm: extra wakes only cause extra polls, and the
// result is unchanged.
func TestDriveToleratesSpuriousSignals(t *testing.T) {
	rt := newTestRuntime(t)
	root := &countingRoot{target: 2}

	go func() {
		for i := 0; i < 10; i++ {
			rt.notify(api.Signal{Source: api.SourceIO})
		}
	}()

	_, err := Drive(rt, root)
	require.NoError(t, err)
}

func TestDriveContextCancelsRoot(t *testing.T) {
	rt := newTestRuntime(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	root := &countingRoot{target: 1 << 30}
	_, err := DriveContext(ctx, rt, root)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, root.cancelled, "root must be torn down on context cancellation")
}

func TestSubmitAfterCloseFails(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.DisableReactor = true
	cfg.Logger = control.NopLogger{}
	rt, err := NewWithConfig(cfg)
	require.NoError(t, err)
	require.NoError(t, rt.Close())
	require.NoError(t, rt.Close(), "close must be idempotent")

	err = rt.Submit(api.NewWorkItem(func() error { return nil }))
	require.ErrorIs(t, err, api.ErrRuntimeClosed)
}

func TestWatchWithoutReactor(t *testing.T) {
	rt := newTestRuntime(t)
	require.ErrorIs(t, rt.Watch(3), api.ErrReactorUnavailable)
	require.ErrorIs(t, rt.Unwatch(3), api.ErrReactorUnavailable)
}

func TestNotifyNeverBlocks(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.DisableReactor = true
	cfg.SignalBuffer = 2
	cfg.Logger = control.NopLogger{}
	reg := control.NewRegistry()
	cfg.Metrics = reg
	rt, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer rt.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			rt.notify(api.Signal{Source: api.SourceIO})
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("notify blocked on a full signal buffer")
	}

	snap := reg.Snapshot()
	require.Equal(t, int64(100), snap["signals_io"])
	require.Equal(t, int64(98), snap["signals_dropped"])
}

// End-to-end: drive a join of pool-backed tasks to completion.
func TestDriveBlockingTasksThroughPool(t *testing.T) {
	rt := newTestRuntime(t)

	var calls atomic.Int32
	mk := func(v int) api.Task[int] {
		return task.Blocking(rt, func() (int, error) {
			calls.Add(1)
			time.Sleep(5 * time.Millisecond)
			return v, nil
		})
	}

	got, err := Drive(rt, task.Join(mk(1), mk(2), mk(3)))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
	require.Equal(t, int32(3), calls.Load())
}
