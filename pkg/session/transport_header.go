package session

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HeaderTransport carries the token in a request header for API clients
// that do not keep cookies. Responses echo the token in the same header and
// its lifetime in seconds under <name>-TTL.
type HeaderTransport struct {
	name   string
	scheme string
}

// HeaderOption configures a HeaderTransport.
type HeaderOption func(*HeaderTransport)

// WithHeaderScheme expects values of the form "<scheme> <token>", as in
// "Authorization: Bearer <token>".
func WithHeaderScheme(scheme string) HeaderOption {
	return func(t *HeaderTransport) {
		t.scheme = scheme
	}
}

// NewHeaderTransport creates a transport reading the bare token from name.
func NewHeaderTransport(name string, opts ...HeaderOption) *HeaderTransport {
	t := &HeaderTransport{name: http.CanonicalHeaderKey(name)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the canonical header name.
func (t *HeaderTransport) Name() string {
	return t.name
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := strings.TrimSpace(r.Header.Get(t.name))
	if t.scheme != "" {
		scheme, rest, ok := strings.Cut(value, " ")
		if !ok || !strings.EqualFold(scheme, t.scheme) {
			return "", ErrTokenMissing
		}
		value = strings.TrimSpace(rest)
	}
	if value == "" {
		return "", ErrTokenMissing
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	value := token
	if t.scheme != "" {
		value = t.scheme + " " + token
	}
	w.Header().Set(t.name, value)
	if ttl > 0 {
		w.Header().Set(t.name+"-TTL", strconv.Itoa(int(ttl/time.Second)))
	}
	return nil
}

// ClearToken sends an empty header so clients drop their stored token.
func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Set(t.name, "")
	w.Header().Del(t.name + "-TTL")
	return nil
}
