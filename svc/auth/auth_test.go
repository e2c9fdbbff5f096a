package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/password"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/svc/auth"
)

const (
	clientIP = "203.0.113.7"
	chromeUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36"
	curlUA   = "curl/8.4.0 (x86_64-pc-linux-gnu) libcurl/8.4.0"
)

type fixture struct {
	accounts *account.MemoryStore
	sessions *session.MemoryStore
	manager  *session.Manager
	hasher   *password.Hasher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sessions := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = sessions.Close() })

	return &fixture{
		accounts: account.NewMemoryStore(),
		sessions: sessions,
		manager:  session.New(session.WithStore(sessions), session.WithTTL(time.Hour)),
		hasher:   password.NewHasher(password.Config{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1}),
	}
}

func (f *fixture) service(opts ...auth.ServiceOption) *auth.Service {
	return auth.NewService(f.accounts, f.manager, f.hasher, opts...)
}

func (f *fixture) register(t *testing.T, username string) (*account.Account, auth.Session) {
	t.Helper()
	acc, sess, err := f.service().Register(context.Background(), auth.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse battery",
	}, clientIP, chromeUA)
	require.NoError(t, err)
	return acc, sess
}

func request(tok, ip, ua string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/account", nil)
	r.RemoteAddr = ip + ":40000"
	r.Header.Set("User-Agent", ua)
	if tok != "" {
		r.AddCookie(&http.Cookie{Name: "xiler-session", Value: tok})
	}
	return r
}
