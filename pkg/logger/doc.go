// Package logger builds *slog.Logger values from functional options and
// provides attribute helpers with stable key names.
//
// New returns a JSON logger writing to stdout at info level. Options switch
// format and level, attach static attributes, apply an environment preset or
// register ContextExtractor callbacks that copy request-scoped values into
// every record:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "htmlsaver"),
//	    logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//	)
//	log.Info("flushed batch", logger.BatchSize(50), logger.Trigger("size"))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
