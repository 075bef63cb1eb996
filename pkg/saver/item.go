package saver

import "context"

// Item is implemented by producer types that carry HTML content to persist.
//
// Content is passed through the sanitizer pipeline at flush time. Name is used
// verbatim as the storage key, prefixed with the configured prefix if any.
// Items must not be mutated after they are handed to Save.
type Item interface {
	Content() string
	Name() string
}

// Storage persists content under a key. Implementations must be safe for
// concurrent use and must not retain content after Put returns.
type Storage interface {
	Put(ctx context.Context, key string, content []byte, contentType string) error
}

// StorageFunc adapts a plain function to the Storage interface.
type StorageFunc func(ctx context.Context, key string, content []byte, contentType string) error

// Put calls f.
func (f StorageFunc) Put(ctx context.Context, key string, content []byte, contentType string) error {
	return f(ctx, key, content, contentType)
}

// Document is a ready-made Item for callers that do not need their own type.
type Document struct {
	Key  string
	HTML string
}

// Content returns the document HTML.
func (d Document) Content() string { return d.HTML }

// Name returns the document key.
func (d Document) Name() string { return d.Key }
