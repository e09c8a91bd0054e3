// Package httpserver runs the settings API next to the host process.
//
// Server wraps http.Server with context-driven graceful shutdown. The host
// process owns signal handling: Run returns once its context is cancelled or
// Shutdown is called, after draining in-flight requests for at most the
// shutdown timeout.
//
//	srv := httpserver.New(cfg.HTTPAddr, httpserver.WithLogger(log))
//	go srv.Run(ctx, rt.Handler())
//
// ReadinessHandler reports whether the dependencies of the API, such as the
// config store, respond.
package httpserver
