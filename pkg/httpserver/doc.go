// Package httpserver runs the HTTP listener with bounded timeouts and a
// graceful shutdown when the run context is cancelled.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthHandler exposes readiness probes such as pg.Healthcheck and
// redis.Healthcheck.
package httpserver
