package clientip

import (
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

// Config lists the proxy headers trusted to carry the client address.
type Config struct {
	TrustedHeaders []string `env:"CLIENTIP_TRUSTED_HEADERS" envSeparator:","`
}

// Resolver extracts client IPs from requests.
type Resolver struct {
	headers []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTrustedHeaders appends headers to consult, in order, before RemoteAddr.
func WithTrustedHeaders(headers ...string) Option {
	return func(r *Resolver) {
		for _, h := range headers {
			if h = strings.TrimSpace(h); h != "" {
				r.headers = append(r.headers, textproto.CanonicalMIMEHeaderKey(h))
			}
		}
	}
}

// NewResolver creates a Resolver. Without options only RemoteAddr is used.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewResolverFromConfig creates a Resolver from loaded configuration.
func NewResolverFromConfig(cfg Config) *Resolver {
	return NewResolver(WithTrustedHeaders(cfg.TrustedHeaders...))
}

// Resolve returns the normalised client IP, or an empty string when no
// source holds a valid address.
func (rs *Resolver) Resolve(r *http.Request) string {
	for _, h := range rs.headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	return RemoteIP(r)
}

// RemoteIP returns the normalised address of the direct peer.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
