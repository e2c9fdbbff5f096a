package email_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/email"
)

func TestMessageValidate(t *testing.T) {
	t.Parallel()

	ok := email.Message{To: "a@example.com", Subject: "s", HTMLBody: "<p>b</p>"}
	assert.NoError(t, ok.Validate())

	for _, m := range []email.Message{
		{To: "not-an-address", Subject: "s", HTMLBody: "b"},
		{To: "a@example.com", Subject: " ", HTMLBody: "b"},
		{To: "a@example.com", Subject: "s"},
	} {
		assert.ErrorIs(t, m.Validate(), email.ErrInvalidMessage)
	}
}

func TestNewSender(t *testing.T) {
	t.Parallel()

	s, err := email.NewSender(email.Config{DevDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, s)

	s, err = email.NewSender(email.Config{PostmarkServerToken: "tok", SenderEmail: "no-reply@example.com"})
	require.NoError(t, err)
	assert.IsType(t, &email.PostmarkSender{}, s)

	_, err = email.NewSender(email.Config{PostmarkServerToken: "tok", SenderEmail: "bad"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "mail")
	s := email.NewDevSender(dir)

	require.NoError(t, email.SendVerification(context.Background(), s, "alice@example.com", "alice", "CODE123"))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	var html, envelope string
	for _, f := range files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name()))
		require.NoError(t, err)
		assert.Contains(t, f.Name(), "account-verification")
		switch filepath.Ext(f.Name()) {
		case ".html":
			html = string(data)
		case ".json":
			envelope = string(data)
		}
	}

	assert.Contains(t, html, "CODE123")
	assert.Contains(t, html, "Hi alice,")

	var meta map[string]any
	require.NoError(t, json.Unmarshal([]byte(envelope), &meta))
	assert.Equal(t, "alice@example.com", meta["to"])
	assert.Equal(t, "account-verification", meta["tag"])
}

func TestVerificationBodyEscapes(t *testing.T) {
	t.Parallel()

	body, err := email.Render(context.Background(), email.VerificationBody("<script>", "c&d"))
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "c&amp;d")
}

func TestPostmarkSender(t *testing.T) {
	t.Parallel()

	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("X-Postmark-Server-Token"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(string(body), "fail@example.com") {
			_, _ = w.Write([]byte(`{"ErrorCode":300,"Message":"Invalid email request"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ErrorCode":0,"Message":"OK","MessageID":"m-1"}`))
	}))
	t.Cleanup(srv.Close)

	s, err := email.NewPostmarkSender(email.Config{
		PostmarkServerToken: "tok",
		SenderEmail:         "no-reply@example.com",
	}, email.WithBaseURL(srv.URL))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, email.SendVerification(ctx, s, "alice@example.com", "alice", "CODE"))
	assert.Equal(t, "alice@example.com", got["To"])
	assert.Equal(t, "no-reply@example.com", got["From"])
	assert.Equal(t, email.VerificationTag, got["Tag"])

	err = email.SendVerification(ctx, s, "fail@example.com", "bob", "CODE")
	assert.ErrorIs(t, err, email.ErrFailedToSendEmail)

	err = s.Send(ctx, email.Message{To: "bad"})
	assert.ErrorIs(t, err, email.ErrInvalidMessage)
}
