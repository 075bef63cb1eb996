package saver

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/htmlsaver/pkg/sanitizer"
)

const (
	DefaultBatchSize     = 50
	DefaultFlushInterval = 5 * time.Second
	DefaultChannelBuffer = 1000
	DefaultContentType   = "text/html"
)

// Config holds the tunables of a saver. It can be populated from the
// environment with config.Load and passed to New through WithConfig.
type Config struct {
	BatchSize     int           `env:"SAVER_BATCH_SIZE" envDefault:"50"`          // Flush as soon as this many items are buffered.
	FlushInterval time.Duration `env:"SAVER_FLUSH_INTERVAL" envDefault:"5s"`      // Flush a non-empty batch at least this often.
	ChannelBuffer int           `env:"SAVER_CHANNEL_BUFFER" envDefault:"1000"`    // Capacity of the queue between producers and the worker.
	Prefix        string        `env:"SAVER_PREFIX"`                              // Prepended to every key as "prefix/name".
	ContentType   string        `env:"SAVER_CONTENT_TYPE" envDefault:"text/html"` // Content type passed to storage.
}

// Option configures a saver created by New.
type Option func(*options)

type options struct {
	batchSize     int
	flushInterval time.Duration
	channelBuffer int
	prefix        string
	contentType   string
	pipeline      *sanitizer.Pipeline
	logger        *slog.Logger
	metrics       *Metrics
}

func defaultOptions() *options {
	return &options{
		batchSize:     DefaultBatchSize,
		flushInterval: DefaultFlushInterval,
		channelBuffer: DefaultChannelBuffer,
		contentType:   DefaultContentType,
		pipeline:      sanitizer.NewPipeline(),
		logger:        slog.Default(),
	}
}

func (o *options) validate() error {
	if o.batchSize < 1 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrInvalidConfig, o.batchSize)
	}
	if o.flushInterval <= 0 {
		return fmt.Errorf("%w: flush interval must be positive, got %s", ErrInvalidConfig, o.flushInterval)
	}
	if o.channelBuffer < 1 {
		return fmt.Errorf("%w: channel buffer must be positive, got %d", ErrInvalidConfig, o.channelBuffer)
	}
	if o.contentType == "" {
		return fmt.Errorf("%w: content type cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// WithBatchSize sets the number of buffered items that triggers a flush.
func WithBatchSize(n int) Option {
	return func(o *options) {
		o.batchSize = n
	}
}

// WithFlushInterval sets how often a non-empty batch is flushed regardless of size.
func WithFlushInterval(d time.Duration) Option {
	return func(o *options) {
		o.flushInterval = d
	}
}

// WithChannelBuffer sets the queue capacity. Saves beyond it are rejected.
func WithChannelBuffer(n int) Option {
	return func(o *options) {
		o.channelBuffer = n
	}
}

// WithPrefix sets the key prefix. An empty prefix leaves names unchanged.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

func WithContentType(contentType string) Option {
	return func(o *options) {
		o.contentType = contentType
	}
}

// WithConfig applies every field of cfg. Zero values are applied as well, so
// an incomplete Config fails validation instead of silently using defaults.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.batchSize = cfg.BatchSize
		o.flushInterval = cfg.FlushInterval
		o.channelBuffer = cfg.ChannelBuffer
		o.prefix = cfg.Prefix
		if cfg.ContentType != "" {
			o.contentType = cfg.ContentType
		}
	}
}

// WithSanitizer appends a stage to the pipeline. Stages run in the order added.
func WithSanitizer(s sanitizer.Sanitizer) Option {
	return func(o *options) {
		if s != nil {
			o.pipeline.Add(s)
		}
	}
}

// WithPipeline replaces the stages added so far with a copy of p's stages.
// Nil is ignored.
func WithPipeline(p *sanitizer.Pipeline) Option {
	return func(o *options) {
		if p != nil {
			o.pipeline = sanitizer.NewPipeline(p.Stages()...)
		}
	}
}

// WithLogger sets the logger for the worker and the handle.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics enables prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
