package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Setter is the part of a redis client used by Storage. *redis.Client and
// *redis.ClusterClient satisfy it.
type Setter interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// ContentTypeSuffix is appended to a document key to form the key holding
// its content type.
const ContentTypeSuffix = ":content_type"

// Storage writes documents as plain string values. The content type is kept
// next to the document under key+ContentTypeSuffix with the same TTL.
type Storage struct {
	client    Setter
	keyPrefix string
	ttl       time.Duration
}

// StorageOption configures Storage.
type StorageOption func(*Storage)

// WithKeyPrefix prepends prefix to every key.
func WithKeyPrefix(prefix string) StorageOption {
	return func(s *Storage) { s.keyPrefix = prefix }
}

// WithTTL expires documents after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) StorageOption {
	return func(s *Storage) { s.ttl = ttl }
}

func NewStorage(client Setter, opts ...StorageOption) *Storage {
	s := &Storage{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewStorageFromConfig applies the key prefix and TTL from cfg.
func NewStorageFromConfig(client Setter, cfg Config) *Storage {
	return NewStorage(client, WithKeyPrefix(cfg.KeyPrefix), WithTTL(cfg.TTL))
}

func (s *Storage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	k := s.keyPrefix + key

	if err := s.client.Set(ctx, k, content, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrPutFailed, k, err)
	}
	if contentType == "" {
		return nil
	}
	if err := s.client.Set(ctx, k+ContentTypeSuffix, contentType, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrPutFailed, k+ContentTypeSuffix, err)
	}
	return nil
}
