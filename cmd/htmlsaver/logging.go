package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/htmlsaver/pkg/httpserver"
	"github.com/dmitrymomot/htmlsaver/pkg/logger"
)

// newLogger builds the process logger from the APP_ENV preset, then applies
// LOG_FORMAT, LOG_LEVEL and LOG_ADD_SOURCE overrides on top of it.
func newLogger(cfg appConfig, out io.Writer) *slog.Logger {
	level := slog.LevelInfo
	opts := []logger.Option{logger.WithOutput(out)}

	switch strings.ToLower(cfg.Env) {
	case logger.EnvProduction, "prod":
		opts = append(opts, logger.WithProduction(cfg.AppName))
	case logger.EnvStaging, "stage":
		opts = append(opts, logger.WithStaging(cfg.AppName))
	default:
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
		level = slog.LevelDebug
	}

	switch strings.ToLower(cfg.LogFormat) {
	case string(logger.FormatJSON):
		opts = append(opts, logger.WithJSONFormatter())
	case string(logger.FormatText):
		opts = append(opts, logger.WithTextFormatter())
	}

	if cfg.LogLevel != "" {
		level = logger.ParseLevel(cfg.LogLevel)
		opts = append(opts, logger.WithLevel(level))
	}
	if cfg.LogAddSource {
		opts = append(opts, logger.WithHandlerOptions(&slog.HandlerOptions{Level: level, AddSource: true}))
	}

	return logger.New(append(opts, logger.WithContextExtractors(httpserver.RequestIDExtractor()))...)
}
