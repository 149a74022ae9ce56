package service

import (
	"context"
	"log"
	"time"
)

// WarmWorker periodically recomputes the default trending response so the
// most common request is served warm. Refreshes replace the cached entry;
// expiry of everything else stays lazy.
type WarmWorker struct {
	agg      *Aggregator
	interval time.Duration
	stopCh   chan struct{}
}

// NewWarmWorker creates a worker that refreshes every interval.
func NewWarmWorker(agg *Aggregator, interval time.Duration) *WarmWorker {
	return &WarmWorker{
		agg:      agg,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the refresh loop. It runs one tick immediately, then every
// interval.
func (w *WarmWorker) Start(ctx context.Context) {
	log.Printf("warm-worker: starting (interval=%s)", w.interval)

	w.tick(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.tick(ctx)
		case <-ctx.Done():
			log.Println("warm-worker: stopping (context cancelled)")
			return
		case <-w.stopCh:
			log.Println("warm-worker: stopping (stop signal)")
			return
		}
	}
}

// Stop signals the worker to stop.
func (w *WarmWorker) Stop() {
	close(w.stopCh)
}

func (w *WarmWorker) tick(ctx context.Context) {
	start := time.Now()
	w.agg.RefreshTrending(ctx)
	log.Printf("warm-worker: trending refreshed in %s", time.Since(start))
}
