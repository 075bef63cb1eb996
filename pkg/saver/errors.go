package saver

import "errors"

var (
	// ErrEnqueueRejected is returned when the queue is full or the worker has stopped.
	ErrEnqueueRejected = errors.New("saver: enqueue rejected, queue is full or worker stopped")

	// ErrUploadFailed wraps a storage failure for a single item during a flush.
	ErrUploadFailed = errors.New("saver: storage upload failed")

	// ErrInvalidConfig is returned by New when the configuration cannot run a worker.
	ErrInvalidConfig = errors.New("saver: invalid configuration")

	// ErrNilStorage is returned by New when no storage backend is provided.
	ErrNilStorage = errors.New("saver: storage cannot be nil")

	// ErrAlreadyInitialized is returned by Init when a sender for the item type is already registered.
	ErrAlreadyInitialized = errors.New("saver: global sender already initialized for this item type")
)
