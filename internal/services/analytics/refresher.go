package analytics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Refresher keeps per-user analytics caches warm. Each user gets at most one
// background loop that recomputes all three metrics through the engine (which
// consults and repopulates the cache itself) on a fixed interval. Loops run
// until stopped, or until a cycle fails; a failed loop deregisters itself so
// a later read can start a fresh one.
type Refresher struct {
	engine   Service
	interval time.Duration
	metrics  MetricsCollector

	mu     sync.Mutex
	active map[uuid.UUID]*refreshLoop
	wg     sync.WaitGroup
}

// refreshLoop identifies one running loop. The registry maps each user to the
// handle of the loop that currently owns the slot, so a loop unwinding after
// it was already replaced cannot touch its successor's entry.
type refreshLoop struct {
	cancel context.CancelFunc
}

func NewRefresher(engine Service, interval time.Duration, metrics MetricsCollector) *Refresher {
	if engine == nil {
		panic("engine is required")
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	return &Refresher{
		engine:   engine,
		interval: interval,
		metrics:  metrics,
		active:   make(map[uuid.UUID]*refreshLoop),
	}
}

// Start launches a refresh loop for the user and reports whether a new one
// was started. Repeated calls while a loop is running are no-ops, so every
// read can trigger it fire-and-forget without spawning duplicates.
func (r *Refresher) Start(userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, running := r.active[userID]; running {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	handle := &refreshLoop{cancel: cancel}
	r.active[userID] = handle
	r.metrics.RefresherStarted()

	r.wg.Add(1)
	go r.loop(ctx, userID, handle)

	log.Printf("started analytics refresh loop for user %s", userID)
	return true
}

// Stop cancels the user's refresh loop and reports whether one was running.
func (r *Refresher) Stop(userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	handle, running := r.active[userID]
	if !running {
		return false
	}
	handle.cancel()
	delete(r.active, userID)
	r.metrics.RefresherStopped()
	return true
}

// StopAll cancels every loop and waits for them to exit.
func (r *Refresher) StopAll() {
	r.mu.Lock()
	for userID, handle := range r.active {
		handle.cancel()
		delete(r.active, userID)
		r.metrics.RefresherStopped()
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Active returns the number of running refresh loops.
func (r *Refresher) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

func (r *Refresher) loop(ctx context.Context, userID uuid.UUID, handle *refreshLoop) {
	defer r.wg.Done()
	defer r.release(userID, handle)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.refresh(ctx, userID); err != nil {
			if ctx.Err() != nil {
				return
			}
			// A failed cycle terminates this instance; the error is retried
			// only by whatever loop a later read starts.
			r.metrics.RecordRefreshCycle("error")
			log.Printf("analytics refresh loop for user %s stopped: %v", userID, err)
			return
		}
		r.metrics.RecordRefreshCycle("ok")

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (r *Refresher) refresh(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.engine.AverageTransactionValue(ctx, userID); err != nil {
		return err
	}
	if _, err := r.engine.HighestTransactionDay(ctx, userID); err != nil {
		return err
	}
	if _, err := r.engine.TransactionTotals(ctx, userID, nil, nil); err != nil {
		return err
	}
	return nil
}

// release deregisters the exiting loop's own entry. A loop that was already
// replaced no longer owns the slot and must leave its successor untouched.
func (r *Refresher) release(userID uuid.UUID, handle *refreshLoop) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, running := r.active[userID]
	if !running || current != handle {
		return
	}
	handle.cancel()
	delete(r.active, userID)
	r.metrics.RefresherStopped()
}
