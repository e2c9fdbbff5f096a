package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/svc/auth"
)

// Module serves the account endpoints.
type Module struct {
	svc      *auth.Service
	gate     *auth.Gate
	sessions *session.Manager
	log      *slog.Logger
	throttle func(http.Handler) http.Handler
}

// Option configures the module.
type Option func(*Module)

// WithLogger sets the logger used for server-side failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.log = l
		}
	}
}

// WithThrottle wraps the unauthenticated routes, typically with
// ratelimiter.Middleware.
func WithThrottle(mw func(http.Handler) http.Handler) Option {
	return func(m *Module) {
		m.throttle = mw
	}
}

// New creates the module.
func New(svc *auth.Service, gate *auth.Gate, sessions *session.Manager, opts ...Option) *Module {
	m := &Module{
		svc:      svc,
		gate:     gate,
		sessions: sessions,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Router returns the account routes.
//
//	r := chi.NewRouter()
//	r.Mount("/", account.New(svc, gate, sessions).Router())
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()
	wrap := core.WithLogger(m.log)

	r.Group(func(public chi.Router) {
		if m.throttle != nil {
			public.Use(m.throttle)
		}
		public.Post("/register", core.Wrap(m.register, wrap))
		public.Post("/login", core.Wrap(m.login, wrap))
	})

	r.Group(func(private chi.Router) {
		private.Use(m.gate.Middleware)

		private.Get("/account", core.Wrap(m.profile, wrap))
		private.Delete("/account", core.Wrap(m.deleteAccount, wrap))
		private.Post("/logout", core.Wrap(m.logout, wrap))
		private.Post("/logout/all", core.Wrap(m.logoutAll, wrap))
		private.Post("/verify", core.Wrap(m.verify, wrap))
		private.Put("/account/authentication/{method}", core.Wrap(m.updateMethod, wrap))
		private.Delete("/account/authentication/{method}", core.Wrap(m.removeMethod, wrap))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		core.WriteError(w, core.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		core.WriteError(w, core.ErrMethodNotAllowed)
	})

	return r
}
