package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/fingerprint"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/metrics"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/pkg/token"
	"github.com/dmitrymomot/authgate/pkg/useragent"
)

// Gate outcomes reported to metrics.
const (
	OutcomeOK        = "ok"
	OutcomeMissing   = "missing"
	OutcomeUnknown   = "unknown"
	OutcomeMalformed = "malformed"
	OutcomeTheft     = "theft"
	OutcomeGone      = "gone"
	OutcomeError     = "error"
)

// Gate authenticates requests by their session token.
type Gate struct {
	accounts account.Store
	sessions *session.Manager
	matcher  *fingerprint.Matcher
	clientIP func(*http.Request) string
	log      *slog.Logger
	metrics  metrics.Recorder
	missing  error
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithMatcher overrides the fingerprint matcher.
func WithMatcher(m *fingerprint.Matcher) GateOption {
	return func(g *Gate) {
		if m != nil {
			g.matcher = m
		}
	}
}

// WithClientIP sets how the middleware resolves the client address.
// By default it reads clientip.FromContext and falls back to RemoteAddr.
func WithClientIP(fn func(*http.Request) string) GateOption {
	return func(g *Gate) {
		if fn != nil {
			g.clientIP = fn
		}
	}
}

// WithGateLogger sets the logger.
func WithGateLogger(l *slog.Logger) GateOption {
	return func(g *Gate) {
		if l != nil {
			g.log = l
		}
	}
}

// WithGateMetrics sets the metrics recorder.
func WithGateMetrics(r metrics.Recorder) GateOption {
	return func(g *Gate) {
		if r != nil {
			g.metrics = r
		}
	}
}

// NewGate builds a gate over the account store and the session manager.
func NewGate(accounts account.Store, sessions *session.Manager, opts ...GateOption) *Gate {
	g := &Gate{
		accounts: accounts,
		sessions: sessions,
		matcher:  fingerprint.NewMatcher(),
		clientIP: clientip.FromRequest,
		log:      logger.Discard(),
		metrics:  metrics.Nop{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.missing = missingSession(sessions.Config().CookieName)
	return g
}

// Authenticate resolves tok to its account. Versioned tokens must match the
// presenting client; a rejected token is deleted before ErrTheftDetected is
// returned. Unversioned tokens are looked up without fingerprinting.
func (g *Gate) Authenticate(ctx context.Context, tok, ip, userAgent string) (*account.Account, error) {
	if tok == "" {
		return nil, g.missing
	}

	ownerID, err := g.sessions.Store().Get(ctx, tok)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("auth: session lookup: %w", err)
	}

	if token.IsVersioned(tok) {
		parsed, err := token.Parse(tok)
		if err != nil {
			return nil, err
		}

		res := g.matcher.Match(parsed, ip, useragent.Parse(userAgent))
		g.metrics.ObserveFingerprintScore(res.Score)

		if !res.Accepted {
			if err := g.sessions.Store().Delete(ctx, tok); err != nil {
				return nil, fmt.Errorf("auth: revoke stolen session: %w", err)
			}
			g.metrics.RecordTheft()
			g.log.WarnContext(ctx, "session revoked on fingerprint mismatch",
				logger.Event("session_theft"),
				logger.AccountID(ownerID),
				logger.ClientIP(ip),
				logger.Score(res.Score),
				slog.Int("mismatches", res.Mismatches),
			)
			return nil, ErrTheftDetected
		}
	}

	id, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, ErrAccountGone
	}

	acc, err := g.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return nil, ErrAccountGone
		}
		return nil, fmt.Errorf("auth: account lookup: %w", err)
	}

	return acc, nil
}

// Middleware rejects unauthenticated requests with a {"message"} body and
// passes the account and token to next through the request context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tok, err := g.sessions.Token(r)
		if err != nil {
			tok = ""
		}

		acc, err := g.Authenticate(ctx, tok, g.clientIP(r), r.UserAgent())
		outcome := outcomeOf(err)
		g.metrics.RecordGateOutcome(outcome)

		if err != nil {
			switch outcome {
			case OutcomeTheft, OutcomeGone, OutcomeUnknown:
				_ = g.sessions.Clear(w)
			case OutcomeError:
				g.log.ErrorContext(ctx, "authentication failed",
					logger.Component("gate"),
					logger.Error(err),
				)
			}
			core.WriteError(w, err)
			return
		}

		ctx = WithAccount(ctx, acc)
		ctx = session.WithToken(ctx, tok)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrMissingSession):
		return OutcomeMissing
	case errors.Is(err, session.ErrSessionNotFound):
		return OutcomeUnknown
	case errors.Is(err, token.ErrMalformedToken):
		return OutcomeMalformed
	case errors.Is(err, ErrTheftDetected):
		return OutcomeTheft
	case errors.Is(err, ErrAccountGone):
		return OutcomeGone
	}
	return OutcomeError
}
