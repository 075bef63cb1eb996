package saver

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/htmlsaver/pkg/logger"
)

// Handle is the owning front end of a running saver. It enqueues items and
// is the only value that can shut the worker down. Use Sender to share the
// enqueue capability with other goroutines.
type Handle[T Item] struct {
	queue    *queue[T]
	worker   *worker[T]
	shutdown chan struct{}
	once     sync.Once
	done     chan struct{}
	logger   *slog.Logger
	metrics  *Metrics
}

// New validates the options, starts the background worker and returns its handle.
//
//	h, err := saver.New[Page](storage,
//		saver.WithBatchSize(100),
//		saver.WithFlushInterval(10*time.Second),
//		saver.WithPrefix("snapshots/v1"),
//		saver.WithSanitizer(sanitizer.NewSubstring(sanitizer.Rule{Pattern: "secret", Replacement: "***"})),
//	)
func New[T Item](storage Storage, opts ...Option) (*Handle[T], error) {
	if storage == nil {
		return nil, ErrNilStorage
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := o.logger.With(logger.Component("saver"))
	q := newQueue[T](o.channelBuffer)
	shutdown := make(chan struct{})
	done := make(chan struct{})

	w := &worker[T]{
		id:            id,
		queue:         q,
		shutdown:      shutdown,
		done:          done,
		storage:       storage,
		pipeline:      o.pipeline,
		prefix:        o.prefix,
		contentType:   o.contentType,
		batchSize:     o.batchSize,
		flushInterval: o.flushInterval,
		batch:         make([]T, 0, o.batchSize),
		logger:        log,
		metrics:       o.metrics,
	}

	go w.run(context.Background())

	return &Handle[T]{
		queue:    q,
		worker:   w,
		shutdown: shutdown,
		done:     done,
		logger:   log,
		metrics:  o.metrics,
	}, nil
}

// MustNew is like New but panics on invalid configuration.
func MustNew[T Item](storage Storage, opts ...Option) *Handle[T] {
	h, err := New[T](storage, opts...)
	if err != nil {
		panic(fmt.Sprintf("saver: %v", err))
	}
	return h
}

// Save queues an item without blocking. It returns ErrEnqueueRejected when
// the queue is full or the worker has stopped.
func (h *Handle[T]) Save(item T) error {
	return enqueue(h.queue, h.metrics, item)
}

// SaveOrLog is like Save but logs the error instead of returning it.
func (h *Handle[T]) SaveOrLog(item T) {
	saveOrLog(h.queue, h.metrics, h.logger, item)
}

// Sender returns a cloneable sender sharing the handle's queue.
func (h *Handle[T]) Sender() Sender[T] {
	return Sender[T]{queue: h.queue, logger: h.logger, metrics: h.metrics}
}

// Shutdown signals the worker and waits until every accepted item has been
// flushed. If ctx ends first, ctx.Err() is returned and the worker keeps
// draining in the background. The signal is sent at most once; later calls
// only wait.
func (h *Handle[T]) Shutdown(ctx context.Context) error {
	h.once.Do(func() { close(h.shutdown) })

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the worker has stopped.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// State reports the worker lifecycle stage.
func (h *Handle[T]) State() State {
	return h.worker.State()
}

// Sender is a lightweight, copyable front end that can only enqueue. It has
// no shutdown authority; discarding senders does not stop the worker.
type Sender[T Item] struct {
	queue   *queue[T]
	logger  *slog.Logger
	metrics *Metrics
}

// Save queues an item without blocking. See Handle.Save.
func (s Sender[T]) Save(item T) error {
	if s.queue == nil {
		return ErrEnqueueRejected
	}
	return enqueue(s.queue, s.metrics, item)
}

// SaveOrLog queues an item and logs the error if it was rejected.
func (s Sender[T]) SaveOrLog(item T) {
	if s.queue == nil {
		return
	}
	saveOrLog(s.queue, s.metrics, s.logger, item)
}

func enqueue[T Item](q *queue[T], m *Metrics, item T) error {
	if !q.offer(item) {
		m.rejected()
		return ErrEnqueueRejected
	}
	m.enqueued()
	return nil
}

func saveOrLog[T Item](q *queue[T], m *Metrics, log *slog.Logger, item T) {
	if err := enqueue(q, m, item); err != nil {
		log.Error("failed to queue save request",
			logger.Key(item.Name()),
			logger.Error(err))
	}
}
