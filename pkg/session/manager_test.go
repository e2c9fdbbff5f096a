package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/pkg/token"
)

const testUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36"

func TestManager_CreateAndAttach(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore(0)
	defer store.Close()

	m := session.New(session.WithStore(store), session.WithTTL(2*time.Hour))

	issued, err := m.Create(ctx, "203.0.113.7", testUA, "owner-a")
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Attach(rec, issued.Token, issued.TTL))

	assert.True(t, token.IsVersioned(issued.Token))
	assert.Equal(t, 7200, issued.TTLSeconds())

	owner, err := store.Get(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "owner-a", owner)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "xiler-session", cookies[0].Name)
	assert.Equal(t, issued.Token, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	got, err := m.Token(req)
	require.NoError(t, err)
	assert.Equal(t, issued.Token, got)
}

func TestManager_Attach(t *testing.T) {
	m := session.New()
	defer m.Close()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Attach(rec, "tok-1", time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tok-1", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestManager_RevokeAll(t *testing.T) {
	ctx := context.Background()
	m := session.New()
	defer m.Close()

	a, err := m.Create(ctx, "10.0.0.1", testUA, "owner-a")
	require.NoError(t, err)
	b, err := m.Create(ctx, "10.0.0.2", testUA, "owner-a")
	require.NoError(t, err)
	c, err := m.Create(ctx, "10.0.0.3", testUA, "owner-b")
	require.NoError(t, err)

	require.NoError(t, m.RevokeAll(ctx, "owner-a"))
	for _, tok := range []string{a.Token, b.Token} {
		_, err = m.Store().Get(ctx, tok)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	}

	owner, err := m.Store().Get(ctx, c.Token)
	require.NoError(t, err)
	assert.Equal(t, "owner-b", owner)
}

func TestNewFromConfig(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.CookieName = "custom"

	m := session.NewFromConfig(cfg)
	defer m.Close()

	assert.Equal(t, "custom", m.Config().CookieName)
	assert.Equal(t, 30*24*time.Hour, m.Config().TTL)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Attach(rec, "tok", time.Minute))
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, "custom", rec.Result().Cookies()[0].Name)
	assert.Empty(t, rec.Header().Get("X-Session-Token"))
}

func TestNewFromConfig_HeaderName(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.HeaderName = "X-Session-Token"

	m := session.NewFromConfig(cfg)
	defer m.Close()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Attach(rec, "tok-1", time.Hour))
	assert.Equal(t, "tok-1", rec.Header().Get("X-Session-Token"))
	assert.Equal(t, "3600", rec.Header().Get("X-Session-Token-TTL"))
	require.Len(t, rec.Result().Cookies(), 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Token", "tok-1")
	got, err := m.Token(req)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	_, err = m.Token(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, session.ErrTokenMissing)
}

func TestTokenContext(t *testing.T) {
	_, ok := session.TokenFromContext(context.Background())
	assert.False(t, ok)

	ctx := session.WithToken(context.Background(), "tok")
	got, ok := session.TokenFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok", got)
}
