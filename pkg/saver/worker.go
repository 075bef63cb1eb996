package saver

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/htmlsaver/pkg/async"
	"github.com/dmitrymomot/htmlsaver/pkg/logger"
	"github.com/dmitrymomot/htmlsaver/pkg/sanitizer"
)

// State is the lifecycle stage of a worker.
type State int32

const (
	StateRunning State = iota
	StateDraining
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Flush triggers, used as log attribute and metric label.
const (
	triggerSize     = "size"
	triggerInterval = "interval"
	triggerShutdown = "shutdown"
)

// worker owns the batch, the storage and the pipeline. Only the run goroutine
// touches them, so none of its fields except state need synchronization.
type worker[T Item] struct {
	id            uuid.UUID
	queue         *queue[T]
	shutdown      <-chan struct{}
	done          chan<- struct{}
	storage       Storage
	pipeline      *sanitizer.Pipeline
	prefix        string
	contentType   string
	batchSize     int
	flushInterval time.Duration
	batch         []T
	state         atomic.Int32
	logger        *slog.Logger
	metrics       *Metrics
}

func (w *worker[T]) State() State {
	return State(w.state.Load())
}

// run is the coordinating loop. It returns only after a shutdown signal, once
// every accepted item has been flushed.
func (w *worker[T]) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	w.logger.InfoContext(ctx, "worker started",
		logger.WorkerID(w.id),
		logger.BatchSize(w.batchSize),
		slog.Duration("flush_interval", w.flushInterval))

	for {
		// Shutdown wins over pending items and ticks.
		select {
		case <-w.shutdown:
			w.stop(ctx)
			return
		default:
		}

		select {
		case <-w.shutdown:
			w.stop(ctx)
			return

		case item := <-w.queue.items:
			w.batch = append(w.batch, item)
			w.metrics.setBatch(len(w.batch))
			if len(w.batch) >= w.batchSize {
				w.flush(ctx, triggerSize)
			}

		case <-ticker.C:
			w.flush(ctx, triggerInterval)
		}
	}
}

// stop drains the queue without a size bound and performs the final flush.
func (w *worker[T]) stop(ctx context.Context) {
	w.state.Store(int32(StateDraining))
	w.logger.InfoContext(ctx, "shutdown signal received, draining queue", logger.WorkerID(w.id))

	w.queue.close()
	w.queue.drain(func(item T) {
		w.batch = append(w.batch, item)
	})
	w.flush(ctx, triggerShutdown)

	w.state.Store(int32(StateStopped))
	w.logger.InfoContext(ctx, "worker stopped", logger.WorkerID(w.id))
}

// flush takes the whole batch and stores every item concurrently, waiting for
// all of them. Failures are logged and dropped.
func (w *worker[T]) flush(ctx context.Context, trigger string) {
	if len(w.batch) == 0 {
		return
	}

	items := w.batch
	w.batch = make([]T, 0, w.batchSize)
	w.metrics.setBatch(0)

	start := time.Now()
	w.logger.DebugContext(ctx, "flushing batch",
		logger.WorkerID(w.id),
		logger.BatchSize(len(items)),
		logger.Trigger(trigger))

	futures := make([]*async.Future[string], 0, len(items))
	for _, item := range items {
		futures = append(futures, async.Async(ctx, item, w.store))
	}
	results := async.Settle(futures...)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}

	duration := time.Since(start)
	w.metrics.observeFlush(trigger, len(items)-failed, failed, duration)
	w.logger.DebugContext(ctx, "flushed batch",
		logger.WorkerID(w.id),
		logger.BatchSize(len(items)),
		slog.Int("failed", failed),
		logger.Trigger(trigger),
		logger.Duration(duration))
}

// store sanitizes and persists a single item. A panicking storage is treated
// as a failed upload so it cannot take the worker down.
func (w *worker[T]) store(ctx context.Context, item T) (key string, err error) {
	key = w.key(item.Name())

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: panic: %v", ErrUploadFailed, key, r)
		}
		if err != nil {
			w.logger.ErrorContext(ctx, "failed to store item",
				logger.WorkerID(w.id),
				logger.Key(key),
				logger.Error(err))
		}
	}()

	content := item.Content()
	if !w.pipeline.IsEmpty() {
		content = w.pipeline.Sanitize(content)
	}

	if putErr := w.storage.Put(ctx, key, []byte(content), w.contentType); putErr != nil {
		return key, fmt.Errorf("%w: %s: %w", ErrUploadFailed, key, putErr)
	}
	return key, nil
}

// key joins the prefix and the item name with a slash. An empty prefix keeps
// the name unchanged.
func (w *worker[T]) key(name string) string {
	return Key(w.prefix, name)
}

// Key composes a storage key the same way the worker does.
func Key(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
