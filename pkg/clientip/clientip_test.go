package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authgate/pkg/clientip"
)

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		trusted    []string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "remote addr by default",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.7"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "10.0.0.2",
			expected:   "10.0.0.2",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:443",
			expected:   "2001:db8::1",
		},
		{
			name:       "invalid remote addr",
			remoteAddr: "not-an-ip",
			expected:   "",
		},
		{
			name:       "trusted header wins",
			trusted:    []string{"cf-connecting-ip"},
			headers:    map[string]string{"CF-Connecting-IP": "203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name:       "forwarded list takes first valid",
			trusted:    []string{"X-Forwarded-For"},
			headers:    map[string]string{"X-Forwarded-For": "garbage, 198.51.100.178, 203.0.113.195"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "trusted headers in order",
			trusted:    []string{"CF-Connecting-IP", "X-Real-IP"},
			headers:    map[string]string{"X-Real-IP": "192.0.2.10"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "192.0.2.10",
		},
		{
			name:       "invalid header falls back",
			trusted:    []string{"X-Real-IP"},
			headers:    map[string]string{"X-Real-IP": "999.1.1.1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "10.0.0.1",
		},
		{
			name:       "normalises ipv6",
			trusted:    []string{"X-Real-IP"},
			headers:    map[string]string{"X-Real-IP": "2001:DB8:0:0:0:0:0:1"},
			remoteAddr: "10.0.0.1:54321",
			expected:   "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			r := clientip.NewResolverFromConfig(clientip.Config{TrustedHeaders: tt.trusted})
			assert.Equal(t, tt.expected, r.Resolve(req))
		})
	}
}

func TestResolver_Middleware(t *testing.T) {
	t.Parallel()

	var got string
	h := clientip.NewResolver().Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = clientip.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.44:1234"
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.44", got)
	assert.Empty(t, clientip.FromContext(req.Context()))
}

func TestFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.44:1234"
	assert.Equal(t, "192.0.2.44", clientip.FromRequest(req))

	req = req.WithContext(clientip.WithContext(req.Context(), "198.51.100.9"))
	assert.Equal(t, "198.51.100.9", clientip.FromRequest(req))
}
