package session

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/authgate/pkg/token"
	"github.com/dmitrymomot/authgate/pkg/useragent"
)

// Issued describes a freshly created session.
type Issued struct {
	Token string
	TTL   time.Duration
}

// TTLSeconds returns the lifetime in whole seconds.
func (i Issued) TTLSeconds() int {
	return int(i.TTL / time.Second)
}

// Manager handles session operations
type Manager struct {
	store     Store
	transport Transport
	config    Config
}

// New creates a new session manager with the given options.
// Without WithStore it falls back to a MemoryStore. Without WithTransport it
// uses a cookie named by the config, combined with a header transport when
// Config.HeaderName is set.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval, WithMemoryTTL(m.config.TTL))
	}

	if m.transport == nil {
		m.transport = m.defaultTransport()
	}

	return m
}

func (m *Manager) defaultTransport() Transport {
	cookie := NewCookieTransport(
		m.config.CookieName,
		WithSecureCookie(m.config.SecureCookies),
		WithCookieDomain(m.config.CookieDomain),
	)
	if m.config.HeaderName == "" {
		return cookie
	}
	return NewCompositeTransport(cookie, NewHeaderTransport(m.config.HeaderName))
}

// Store returns the underlying session store.
func (m *Manager) Store() Store {
	return m.store
}

// Config returns the manager configuration.
func (m *Manager) Config() Config {
	return m.config
}

// Token extracts the session token from r.
func (m *Manager) Token(r *http.Request) (string, error) {
	return m.transport.GetToken(r)
}

// Create generates a fingerprinted token for the client and stores it for
// ownerID without touching the response.
func (m *Manager) Create(ctx context.Context, ip, userAgent, ownerID string) (Issued, error) {
	tok, err := token.Generate(ip, useragent.Parse(userAgent))
	if err != nil {
		return Issued{}, err
	}

	if err := m.store.Set(ctx, tok, ownerID); err != nil {
		return Issued{}, err
	}

	return Issued{Token: tok, TTL: m.config.TTL}, nil
}

// Attach writes an already stored session token to the response.
func (m *Manager) Attach(w http.ResponseWriter, tok string, ttl time.Duration) error {
	return m.transport.SetToken(w, tok, ttl)
}

// RevokeAll deletes every session owned by ownerID.
func (m *Manager) RevokeAll(ctx context.Context, ownerID string) error {
	return m.store.DropAll(ctx, ownerID)
}

// Clear removes the token from the response without touching the store.
func (m *Manager) Clear(w http.ResponseWriter) error {
	return m.transport.ClearToken(w)
}

// Close closes the store when it supports it.
func (m *Manager) Close() error {
	if c, ok := m.store.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
