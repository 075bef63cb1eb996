package saver_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

type page struct {
	name string
	html string
}

func (p page) Content() string { return p.html }
func (p page) Name() string { return p.name }

type stored struct {
	content     string
	contentType string
}

// memStorage records every successful Put.
type memStorage struct {
	mu    sync.Mutex
	puts  map[string]stored
	calls atomic.Int32
	// first holds the UnixNano time of the first Put.
	first atomic.Int64

	// fail, when set, decides per key whether Put fails.
	fail func(key string) error
	// gate, when set, blocks every Put until it is closed.
	gate    chan struct{}
	entered chan string
}

func (m *memStorage) firstPut() time.Time {
	return time.Unix(0, m.first.Load())
}

func newMemStorage() *memStorage {
	return &memStorage{puts: make(map[string]stored)}
}

func (m *memStorage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	m.calls.Add(1)
	m.first.CompareAndSwap(0, time.Now().UnixNano())
	if m.entered != nil {
		m.entered <- key
	}
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if m.fail != nil {
		if err := m.fail(key); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.puts[key] = stored{content: string(content), contentType: contentType}
	m.mu.Unlock()
	return nil
}

func (m *memStorage) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.puts)
}

func (m *memStorage) Get(key string) (stored, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.puts[key]
	return s, ok
}

var errBackend = errors.New("backend unavailable")
