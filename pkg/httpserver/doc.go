// Package httpserver runs the HTTP surface of the premium daemon.
//
// Server wraps net/http with graceful shutdown on context cancellation or
// SIGINT/SIGTERM. NewRouter builds the chi router with request IDs, panic
// recovery and debug-level request logs. HealthCheckHandler reports named
// readiness checks as JSON.
//
//	r := httpserver.NewRouter(log)
//	r.Get("/healthz", httpserver.HealthCheckHandler(log, checks))
//	r.Mount("/premium", premium.NewHandler(manager).Handle())
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	err := srv.Run(ctx, r)
package httpserver
