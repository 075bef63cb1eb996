package saver

import (
	"fmt"
	"reflect"
	"sync"
)

// registry keeps one sender per item type. The key is the item's reflect.Type,
// so lookups are checked at compile time by the type parameter.
var registry = struct {
	mu      sync.RWMutex
	senders map[reflect.Type]any
}{senders: make(map[reflect.Type]any)}

// Init registers the handle's sender as the process-wide sender for T.
// The handle itself stays with the caller, who remains responsible for
// Shutdown. Registering a second sender for the same T fails with
// ErrAlreadyInitialized.
func Init[T Item](h *Handle[T]) error {
	if h == nil {
		return fmt.Errorf("%w: nil handle", ErrInvalidConfig)
	}

	key := reflect.TypeFor[T]()

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.senders[key]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyInitialized, key)
	}
	registry.senders[key] = h.Sender()
	return nil
}

// MustInit is like Init but panics if a sender for T is already registered.
func MustInit[T Item](h *Handle[T]) {
	if err := Init(h); err != nil {
		panic(err.Error())
	}
}

// Global returns the sender registered for T with Init.
func Global[T Item]() (Sender[T], bool) {
	registry.mu.RLock()
	v, ok := registry.senders[reflect.TypeFor[T]()]
	registry.mu.RUnlock()

	if !ok {
		return Sender[T]{}, false
	}
	return v.(Sender[T]), true
}
