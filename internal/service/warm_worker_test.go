package service

import (
	"context"
	"testing"
	"time"
)

// Start blocks until stopped, so the composition root must launch it on its
// own goroutine. This exercises that launch pattern end to end: the caller
// keeps running, a refresh lands in the result cache, and Stop terminates
// the loop.
func TestWarmWorker_RunsInBackground(t *testing.T) {
	agg, _ := newTestAggregator(nil, localVideo("l1", "L1", 100))
	w := NewWarmWorker(agg, 20*time.Millisecond)

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	// The launching goroutine is not blocked; wait for the first refresh to
	// populate the result cache.
	deadline := time.Now().Add(time.Second)
	for agg.Stats().CacheEntries == 0 {
		if time.Now().After(deadline) {
			t.Fatal("no trending refresh observed within 1s")
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
		t.Fatal("Start returned before Stop was called")
	default:
	}

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestWarmWorker_StopsOnContextCancel(t *testing.T) {
	agg, _ := newTestAggregator(nil, localVideo("l1", "L1", 100))
	w := NewWarmWorker(agg, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after context cancellation")
	}
}
