package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InvalidateWorker listens for PostgreSQL NOTIFY on the 'catalog_changes'
// channel and batches cache invalidations. A burst of edits to the same
// video within the batch window invalidates once, not per edit.
type InvalidateWorker struct {
	pool    *pgxpool.Pool
	agg     *Aggregator
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // video IDs waiting for invalidation
}

// NewInvalidateWorker creates a catalog-change invalidation worker.
func NewInvalidateWorker(pool *pgxpool.Pool, agg *Aggregator) *InvalidateWorker {
	return &InvalidateWorker{
		pool:    pool,
		agg:     agg,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for catalog_changes notifications and processing
// batches. It reconnects with a delay when the listen connection drops.
func (w *InvalidateWorker) Start(ctx context.Context) {
	log.Printf("invalidate-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("invalidate-worker: stopping (context cancelled)")
				return
			}
			log.Printf("invalidate-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("invalidate-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on catalog_changes,
// and collects notified video IDs into batched windows.
func (w *InvalidateWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN catalog_changes")
	if err != nil {
		return err
	}
	log.Println("invalidate-worker: listening on catalog_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		videoID := notification.Payload
		if videoID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[videoID] = struct{}{}
		w.mu.Unlock()
	}
}

func (w *InvalidateWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and invalidates cached responses that touch
// the changed videos.
func (w *InvalidateWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}

	w.agg.InvalidateVideos(ctx, ids)
	log.Printf("invalidate-worker: batch complete, %d videos invalidated", len(ids))
}
