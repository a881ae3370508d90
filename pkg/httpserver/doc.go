// Package httpserver runs an http.Handler with configured timeouts and
// graceful shutdown.
//
// Run listens, serves and blocks until ctx is cancelled or the process
// receives SIGINT/SIGTERM, then shuts down within the configured deadline and
// runs the registered shutdown funcs (closing pools and clients) in reverse
// order. Listen errors are wrapped with ErrStart; shutdown errors with
// ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithShutdownFunc("postgres", func(context.Context) error { pool.Close(); return nil }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and Readiness build probe handlers; readiness runs every named
// Check and reports each result as JSON.
package httpserver
