package task_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/task"
)

// fakeSubmitter records submissions and lets the test complete items by
// hand, standing in for the worker pool.
type fakeSubmitter struct {
	items   []*api.WorkItem
	failure error
}

func (f *fakeSubmitter) Submit(item *api.WorkItem) error {
	if f.failure != nil {
		return f.failure
	}
	f.items = append(f.items, item)
	return nil
}

// runAll executes every submitted item synchronously.
func (f *fakeSubmitter) runAll() {
	for _, item := range f.items {
		if item.Begin() {
			item.Finish(item.Run())
		}
	}
	f.items = f.items[:0]
}

func TestReadyCompletesImmediately(t *testing.T) {
	p := task.Ready(7).Poll()
	require.True(t, p.IsReady())
	require.Equal(t, 7, p.Value())
	require.NoError(t, p.Err())
}

func TestRepollAfterReadyIsIdempotent(t *testing.T) {
	tk := task.Ready("v")
	first := tk.Poll()
	for i := 0; i < 10; i++ {
		again := tk.Poll()
		require.Equal(t, first, again)
	}
}

func TestErrTaskCarriesFailure(t *testing.T) {
	boom := errors.New("boom")
	p := task.Err[int](boom).Poll()
	require.True(t, p.IsReady())
	require.ErrorIs(t, p.Err(), boom)
}

func TestBlockingSubmitsExactlyOnce(t *testing.T) {
	sub := &fakeSubmitter{}
	tk := task.Blocking(sub, func() (int, error) { return 9, nil })

	require.False(t, tk.Poll().IsReady())
	require.Len(t, sub.items, 1, "first poll must submit exactly one item")

	require.False(t, tk.Poll().IsReady())
	require.Len(t, sub.items, 1, "a repeated pending poll must not resubmit")

	sub.runAll()
	p := tk.Poll()
	require.True(t, p.IsReady())
	require.Equal(t, 9, p.Value())

	// Re-poll after Ready: same result, no new submission.
	require.Equal(t, p, tk.Poll())
	require.Empty(t, sub.items)
}

func TestBlockingSurfacesSubmissionFailure(t *testing.T) {
	sub := &fakeSubmitter{failure: api.ErrBacklogFull}
	tk := task.Blocking(sub, func() (int, error) { return 0, nil })

	p := tk.Poll()
	require.True(t, p.IsReady(), "submission failure is a task result")
	require.ErrorIs(t, p.Err(), api.ErrBacklogFull)
}

func TestBlockingPropagatesBodyError(t *testing.T) {
	boom := errors.New("boom")
	sub := &fakeSubmitter{}
	tk := task.Blocking(sub, func() (int, error) { return 0, boom })

	tk.Poll()
	sub.runAll()
	p := tk.Poll()
	require.True(t, p.IsReady())
	require.ErrorIs(t, p.Err(), boom)
}

func TestBlockingCancelReleasesItem(t *testing.T) {
	sub := &fakeSubmitter{}
	tk := task.Blocking(sub, func() (int, error) { return 1, nil })
	tk.Poll()
	require.Len(t, sub.items, 1)

	tk.Cancel()
	require.True(t, sub.items[0].Cancelled(), "queued item must be cancelled")

	p := tk.Poll()
	require.True(t, p.IsReady())
	require.ErrorIs(t, p.Err(), api.ErrCancelled)
}
