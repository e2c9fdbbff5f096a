package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/ratelimiter"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	l, err := ratelimiter.NewLocalLimiter(ratelimiter.Config{Limit: 2, Window: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	keyFn := func(r *http.Request) string { return r.Header.Get("X-Key") }
	h := ratelimiter.Middleware(l, keyFn, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		if key != "" {
			req.Header.Set("X-Key", key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := do("ip-1")
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, do("ip-1").Code)

	limited := do("ip-1")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusNoContent, do("ip-2").Code)

	// No key, no throttling.
	for range 5 {
		assert.Equal(t, http.StatusNoContent, do("").Code)
	}
}

func TestMiddleware_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	l, err := ratelimiter.NewLocalLimiter(ratelimiter.Config{Limit: 1, Window: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	var gotStatus int
	onError := func(w http.ResponseWriter, r *http.Request, status int) {
		gotStatus = status
		w.WriteHeader(status)
	}
	h := ratelimiter.Middleware(l, func(*http.Request) string { return "k" }, onError)(http.NotFoundHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTooManyRequests, gotStatus)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	a := func(*http.Request) string { return "a" }
	empty := func(*http.Request) string { return "" }
	long := func(*http.Request) string { return strings.Repeat("x", 80) }

	assert.Equal(t, "a", ratelimiter.Composite(a)(req))
	assert.Equal(t, "a:a", ratelimiter.Composite(a, empty, a)(req))
	assert.Equal(t, "", ratelimiter.Composite(empty)(req))

	hashed := ratelimiter.Composite(a, long)(req)
	assert.NotEmpty(t, hashed)
	assert.LessOrEqual(t, len(hashed), 20)
	assert.Equal(t, hashed, ratelimiter.Composite(a, long)(req))
}
