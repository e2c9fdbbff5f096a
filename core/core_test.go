package core_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/core"
	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/pkg/token"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code int
	}{
		{token.ErrMalformedToken, http.StatusBadRequest},
		{session.ErrTokenMissing, http.StatusBadRequest},
		{fmt.Errorf("lookup: %w", session.ErrSessionNotFound), http.StatusUnauthorized},
		{account.ErrDuplicateAccount, http.StatusConflict},
		{account.ErrLastMethod, http.StatusBadRequest},
		{account.ErrMethodNotFound, http.StatusNotFound},
		{core.NewHTTPError(http.StatusGone, "gone"), http.StatusGone},
		{fmt.Errorf("wrapped: %w", core.ErrTooManyRequests), http.StatusTooManyRequests},
		{errors.Join(account.ErrStorage, errors.New("dial tcp: refused")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, core.StatusFor(tc.err).Code, tc.err.Error())
	}

	ve := validator.Apply(validator.Required("name", "", "Name is required."))
	assert.Equal(t, core.HTTPError{Code: http.StatusBadRequest, Message: "Name is required."}, core.StatusFor(ve))

	// Internal causes never leak into the message.
	assert.Equal(t, core.ErrInternal.Message, core.StatusFor(errors.New("secret dsn")).Message)
}

type echoInput struct {
	Name string `json:"name"`
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body core.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestWrap(t *testing.T) {
	t.Parallel()

	h := core.Wrap(func(r *http.Request, in echoInput) (core.Response, error) {
		switch in.Name {
		case "fail":
			return nil, errors.New("db is down")
		case "dup":
			return nil, account.ErrDuplicateAccount
		case "empty":
			return nil, nil
		}
		return core.JSON(http.StatusCreated, in), nil
	})

	do := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec
	}

	rec := do(`{"name":"alice"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"alice"}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = do(`{"name":"fail"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, core.ErrInternal.Message, decodeMessage(t, rec))

	rec = do(`{"name":"dup"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(`{"name":"empty"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(`{"nope":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body.", decodeMessage(t, rec))
}

func TestWrapEmpty(t *testing.T) {
	t.Parallel()

	h := core.Wrap(func(r *http.Request, _ core.Empty) (core.Response, error) {
		return core.WithCookie(core.Message(http.StatusOK, "ok"), &http.Cookie{Name: "c", Value: "v"}), nil
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeMessage(t, rec))
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "c=v")
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	core.WriteError(rec, session.ErrSessionNotFound)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authenticated", decodeMessage(t, rec))
}
