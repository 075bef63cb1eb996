// Package httpserver wraps net/http with context driven graceful shutdown,
// JSON health probes and a few middlewares used by the document API.
//
// Run listens on the configured address and serves until its context is
// cancelled, then calls http.Server.Shutdown with the configured deadline.
// Signal handling is left to the caller, typically via signal.NotifyContext:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler runs named Checks and reports them as JSON. RequestID,
// AccessLog and LimitBody are plain func(http.Handler) http.Handler
// middlewares and plug into chi routers directly.
//
// Run wraps listen errors with ErrStart and Shutdown wraps shutdown errors
// with ErrShutdown.
package httpserver
