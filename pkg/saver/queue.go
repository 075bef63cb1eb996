package saver

import "sync"

// queue is the bounded channel between producers and the worker. Offers never
// block: a full or closed queue rejects the item. Closing takes the write lock,
// so once close returns no producer is mid-send and drain sees every accepted item.
type queue[T Item] struct {
	mu     sync.RWMutex
	closed bool
	items  chan T
}

func newQueue[T Item](capacity int) *queue[T] {
	return &queue[T]{items: make(chan T, capacity)}
}

func (q *queue[T]) offer(item T) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return false
	}

	select {
	case q.items <- item:
		return true
	default:
		return false
	}
}

func (q *queue[T]) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
}

// drain hands every buffered item to fn. Must only be called after close.
func (q *queue[T]) drain(fn func(T)) {
	for {
		select {
		case item := <-q.items:
			fn(item)
		default:
			return
		}
	}
}
