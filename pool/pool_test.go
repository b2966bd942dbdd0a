package pool_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/control"
	"github.com/momentics/hioload-async/pool"
)

func collectSignals() (func(api.Signal), chan api.Signal) {
	ch := make(chan api.Signal, 256)
	return func(s api.Signal) { ch <- s }, ch
}

func TestPoolRejectsInvalidWorkerCount(t *testing.T) {
	notify, _ := collectSignals()
	if _, err := pool.New(0, notify, pool.Options{}); err != api.ErrInvalidWorkerCount {
		t.Fatalf("expected ErrInvalidWorkerCount, got %v", err)
	}
}

func TestPoolExecutesAndSignals(t *testing.T) {
	notify, signals := collectSignals()
	p, err := pool.New(2, notify, pool.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	var ran atomic.Bool
	item := api.NewWorkItem(func() error {
		ran.Store(true)
		return nil
	})
	if err := p.Submit(item); err != nil {
		t.Fatal(err)
	}

	sig := <-signals
	if !ran.Load() || !item.Completed() || item.Err() != nil {
		t.Fatalf("item not executed cleanly: %v", item.Err())
	}
	if sig.Source != api.WorkerSource(0) && sig.Source != api.WorkerSource(1) {
		t.Fatalf("signal lacks worker identity: %q", sig.Source)
	}
}

// With a single worker, two items serialize: no concurrency beyond pool
// size.
func TestSingleWorkerSerializes(t *testing.T) {
	notify, signals := collectSignals()
	p, err := pool.New(1, notify, pool.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	release := make(chan struct{})
	var secondStarted atomic.Bool

	first := api.NewWorkItem(func() error {
		<-release
		return nil
	})
	second := api.NewWorkItem(func() error {
		secondStarted.Store(true)
		return nil
	})
	if err := p.Submit(first); err != nil {
		t.Fatal(err)
	}
	if err := p.Submit(second); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)
	if secondStarted.Load() {
		t.Fatal("second item ran while the only worker was busy")
	}
	close(release)

	<-signals
	<-signals
	if !first.Completed() || !second.Completed() {
		t.Fatal("items did not complete after worker freed")
	}
}

func TestWorkerSurvivesPanic(t *testing.T) {
	notify, signals := collectSignals()
	p, err := pool.New(1, notify, pool.Options{Logger: control.NopLogger{}})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	bad := api.NewWorkItem(func() error { panic("kaboom") })
	if err := p.Submit(bad); err != nil {
		t.Fatal(err)
	}
	<-signals

	var pe *pool.ErrPanic
	if !errors.As(bad.Err(), &pe) {
		t.Fatalf("panic not captured in result slot: %v", bad.Err())
	}
	if pe.Value != "kaboom" {
		t.Fatalf("panic value lost: %v", pe.Value)
	}

	// The worker's queue must still be alive.
	ok := api.NewWorkItem(func() error { return nil })
	if err := p.Submit(ok); err != nil {
		t.Fatal(err)
	}
	<-signals
	if !ok.Completed() || ok.Err() != nil {
		t.Fatal("worker queue stalled after panic")
	}
}

func TestCancelledItemNeverRuns(t *testing.T) {
	notify, signals := collectSignals()
	p, err := pool.New(1, notify, pool.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	release := make(chan struct{})
	blocker := api.NewWorkItem(func() error {
		<-release
		return nil
	})
	var ran atomic.Bool
	doomed := api.NewWorkItem(func() error {
		ran.Store(true)
		return nil
	})

	if err := p.Submit(blocker); err != nil {
		t.Fatal(err)
	}
	if err := p.Submit(doomed); err != nil {
		t.Fatal(err)
	}
	if !doomed.Cancel() {
		t.Fatal("queued item refused cancellation")
	}
	close(release)

	<-signals // blocker only; the cancelled item emits no signal
	time.Sleep(20 * time.Millisecond)
	if ran.Load() {
		t.Fatal("cancelled item was executed")
	}
}

func TestSubmitBacklogFull(t *testing.T) {
	notify, _ := collectSignals()
	p, err := pool.New(1, notify, pool.Options{QueueDepth: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	release := make(chan struct{})
	defer close(release)

	// Occupy the worker, then fill its queue.
	busy := api.NewWorkItem(func() error {
		<-release
		return nil
	})
	if err := p.Submit(busy); err != nil {
		t.Fatal(err)
	}
	// The worker may or may not have dequeued busy yet; keep submitting
	// until the queue reports full.
	deadline := time.After(time.Second)
	for {
		err := p.Submit(api.NewWorkItem(func() error {
			<-release
			return nil
		}))
		if err == api.ErrBacklogFull {
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		select {
		case <-deadline:
			t.Fatal("queue never filled")
		default:
		}
	}
}

func TestSubmitAfterClose(t *testing.T) {
	notify, _ := collectSignals()
	p, err := pool.New(1, notify, pool.Options{})
	if err != nil {
		t.Fatal(err)
	}
	p.Close()
	if err := p.Submit(api.NewWorkItem(func() error { return nil })); err != api.ErrPoolClosed {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestRoundRobinCycles(t *testing.T) {
	sel := pool.NewRoundRobin()
	loads := make([]int, 3)
	want := []int{0, 1, 2, 0, 1, 2}
	for i, w := range want {
		if got := sel.Pick(loads); got != w {
			t.Fatalf("pick %d: got %d, want %d", i, got, w)
		}
	}
}

func TestLeastLoadedPicksShortestQueue(t *testing.T) {
	sel := pool.NewLeastLoaded()
	if got := sel.Pick([]int{3, 0, 2}); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
	// Ties break towards the lowest index.
	if got := sel.Pick([]int{1, 1, 1}); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
