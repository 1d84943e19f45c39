// Package httpserver runs an http.Handler with sane timeouts, graceful
// shutdown on context cancellation or SIGINT/SIGTERM, and start/stop hooks.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(*slog.Logger) { pool.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// LivenessHandler and ReadinessHandler implement the /healthz and /readyz
// endpoints; readiness runs named dependency checks (database, cache).
package httpserver
