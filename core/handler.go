package core

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/binder"
	"github.com/dmitrymomot/authgate/pkg/logger"
)

// HandlerFunc handles a request whose body was decoded into req.
type HandlerFunc[R any] func(r *http.Request, req R) (Response, error)

// Empty is the request type of handlers without a body.
type Empty struct{}

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

type wrapConfig struct {
	log *slog.Logger
}

// WithLogger sets the logger used for server-side errors.
func WithLogger(l *slog.Logger) WrapOption {
	return func(c *wrapConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Wrap adapts h to http.HandlerFunc. Unless R is Empty the body is decoded
// as JSON first. Errors become {"message"} responses; 5xx causes are logged
// and never shown to the client.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}

	var zero R
	_, noBody := any(zero).(Empty)

	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		if !noBody {
			if err := binder.JSON(r, &req); err != nil {
				writeError(cfg.log, w, r, err)
				return
			}
		}

		resp, err := h(r, req)
		if err != nil {
			writeError(cfg.log, w, r, err)
			return
		}
		if resp == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.log.ErrorContext(r.Context(), "failed to render response", logger.Error(err))
		}
	}
}

func writeError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	e := StatusFor(err)
	if e.Code >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			logger.Error(err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}
	_ = Message(e.Code, e.Message).Render(w, r)
}
