package session

import "time"

// Config holds session configuration
type Config struct {
	// CookieName is the name of the session cookie
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"xiler-session"`

	// TTL is the lifetime of a session entry
	TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// CleanupInterval for expired in-memory sessions (0 to disable)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	// SecureCookies enables the Secure flag on session cookies (recommended for production)
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// HeaderName additionally accepts and returns the token in this header
	// for clients without a cookie jar; empty disables it
	HeaderName string `env:"SESSION_HEADER_NAME"`

	// CookieDomain scopes the cookie to a domain; empty means host-only
	CookieDomain string `env:"SESSION_COOKIE_DOMAIN"`

	// RedisPrefix namespaces session keys in Redis
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"session"`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:      "xiler-session",
		TTL:             30 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		RedisPrefix:     "session",
	}
}

// NewFromConfig creates a new Manager from the provided Config.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
