package session

import (
	"net/http"
	"time"
)

// CookieTransport implements Transport using a plain HttpOnly cookie.
// The token is already unguessable, so it is not encrypted.
type CookieTransport struct {
	name   string
	domain string
	secure bool
}

// CookieOption configures a CookieTransport.
type CookieOption func(*CookieTransport)

// WithCookieDomain scopes the cookie to domain.
func WithCookieDomain(domain string) CookieOption {
	return func(t *CookieTransport) {
		t.domain = domain
	}
}

// WithSecureCookie sets the Secure flag.
func WithSecureCookie(secure bool) CookieOption {
	return func(t *CookieTransport) {
		t.secure = secure
	}
}

// NewCookieTransport creates a new cookie-based transport
func NewCookieTransport(name string, opts ...CookieOption) *CookieTransport {
	t := &CookieTransport{name: name}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the cookie name.
func (t *CookieTransport) Name() string {
	return t.name
}

// GetToken extracts the session token from the cookie
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrTokenMissing
	}
	return c.Value, nil
}

// SetToken stores the session token in a cookie
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	c := &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		Domain:   t.domain,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
		c.Expires = time.Now().Add(ttl)
	}

	http.SetCookie(w, c)
	return nil
}

// ClearToken removes the session cookie
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		Domain:   t.domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
