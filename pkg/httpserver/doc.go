// Package httpserver runs an http.Handler with graceful shutdown and serves
// health probes.
//
// Run listens, closes Ready, and blocks until the context is cancelled or the
// process receives SIGINT or SIGTERM. Shutdown is bounded by the shutdown
// timeout and safe to call more than once.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	router.Get("/healthz", httpserver.HealthCheckHandler(log,
//	    httpserver.Check{Name: "postgres", Probe: pg.Healthcheck(pool)},
//	))
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
//
// Listen errors are wrapped with ErrStart and shutdown errors with ErrShutdown.
package httpserver
