// Package app wires the authgate process: configuration, logging, storage
// backends, the auth service and gate, and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/authgate/core"
	accountmod "github.com/dmitrymomot/authgate/modules/account"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/environment"
	"github.com/dmitrymomot/authgate/pkg/fingerprint"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/metrics"
	"github.com/dmitrymomot/authgate/pkg/password"
	"github.com/dmitrymomot/authgate/pkg/ratelimiter"
	"github.com/dmitrymomot/authgate/pkg/requestid"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/svc/auth"
)

// App is a fully wired authgate instance.
type App struct {
	cfg      Config
	log      *slog.Logger
	backends *backends
	handler  http.Handler
}

// New opens the configured backends and builds the HTTP handler. Call
// Close to release the backends when Run is not used.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}

	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var recorder metrics.Recorder = metrics.Nop{}
	registry := prometheus.NewRegistry()
	if cfg.MetricsEnabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewCollector(registry)
	}

	sessions := session.NewFromConfig(cfg.Session, session.WithStore(b.sessions))

	svcOpts := []auth.ServiceOption{
		auth.WithLogger(log.With(logger.Component("auth"))),
		auth.WithMetrics(recorder),
		auth.WithLoginLimiter(b.limiter),
	}
	if cfg.SendEmails {
		sender, err := email.NewSender(cfg.Email)
		if err != nil {
			_ = b.close(context.WithoutCancel(ctx))
			return nil, fmt.Errorf("app: email sender: %w", err)
		}
		svcOpts = append(svcOpts, auth.WithMailer(sender))
	}

	svc := auth.NewService(b.accounts, sessions, password.NewHasher(cfg.Password), svcOpts...)
	gate := auth.NewGate(b.accounts, sessions,
		auth.WithMatcher(fingerprint.NewMatcherFromConfig(cfg.Fingerprint)),
		auth.WithGateLogger(log.With(logger.Component("gate"))),
		auth.WithGateMetrics(recorder),
	)

	throttle := ratelimiter.Middleware(b.limiter,
		func(r *http.Request) string { return "ip:" + clientip.FromRequest(r) },
		func(w http.ResponseWriter, _ *http.Request, status int) {
			if status == http.StatusTooManyRequests {
				core.WriteError(w, core.ErrTooManyRequests)
				return
			}
			core.WriteError(w, core.ErrInternal)
		},
	)

	module := accountmod.New(svc, gate, sessions,
		accountmod.WithLogger(log),
		accountmod.WithThrottle(throttle),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		environment.Middleware(environment.Parse(cfg.Env)),
		clientip.NewResolverFromConfig(cfg.ClientIP).Middleware,
	)
	r.Get("/health", httpserver.HealthHandler(log, b.probes...))
	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler(registry))
	}
	r.Mount("/", module.Router())

	return &App{cfg: cfg, log: log, backends: b, handler: r}, nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run serves until ctx is done, then releases the backends.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.Close(context.WithoutCancel(ctx)); err != nil {
			a.log.ErrorContext(ctx, "failed to close backends", logger.Error(err))
		}
	}()

	srv := httpserver.New(a.cfg.HTTP, httpserver.WithLogger(a.log))
	return srv.Run(ctx, a.handler)
}

// Close releases every opened backend.
func (a *App) Close(ctx context.Context) error {
	return a.backends.close(ctx)
}
