package core

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/binder"
	"github.com/dmitrymomot/authgate/pkg/session"
	"github.com/dmitrymomot/authgate/pkg/token"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

// HTTPError is an error with the status and message shown to the client.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string {
	return e.Message
}

// NewHTTPError returns an HTTPError.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}

var (
	ErrBadRequest       = HTTPError{Code: http.StatusBadRequest, Message: "Bad request."}
	ErrUnauthorized     = HTTPError{Code: http.StatusUnauthorized, Message: "Not authenticated"}
	ErrNotFound         = HTTPError{Code: http.StatusNotFound, Message: "Not found."}
	ErrConflict         = HTTPError{Code: http.StatusConflict, Message: "Conflict."}
	ErrGone             = HTTPError{Code: http.StatusGone, Message: "Gone."}
	ErrTooManyRequests  = HTTPError{Code: http.StatusTooManyRequests, Message: "Too many requests."}
	ErrInternal         = HTTPError{Code: http.StatusInternalServerError, Message: "Internal server error."}
	ErrMethodNotAllowed = HTTPError{Code: http.StatusMethodNotAllowed, Message: "Method not allowed."}
)

// known maps package sentinels to their client-facing form.
var known = []struct {
	err  error
	resp HTTPError
}{
	{session.ErrTokenMissing, HTTPError{http.StatusBadRequest, "Session cookie not found."}},
	{token.ErrMalformedToken, HTTPError{http.StatusBadRequest, "Malformed session token."}},
	{session.ErrSessionNotFound, ErrUnauthorized},
	{account.ErrDuplicateAccount, HTTPError{http.StatusConflict, "Username or email is already taken."}},
	{account.ErrLastMethod, HTTPError{http.StatusBadRequest, "Cannot remove last authentication method"}},
	{account.ErrMethodNotFound, HTTPError{http.StatusNotFound, "Authentication method not found."}},
	{account.ErrInvalidTag, HTTPError{http.StatusBadRequest, "All authentication methods must be a power of two."}},
	{account.ErrAccountNotFound, HTTPError{http.StatusNotFound, "Account not found."}},
	{binder.ErrUnsupportedMediaType, HTTPError{http.StatusUnsupportedMediaType, "Expected an application/json body."}},
	{binder.ErrBodyTooLarge, HTTPError{http.StatusRequestEntityTooLarge, "Request body too large."}},
	{binder.ErrInvalidJSON, HTTPError{http.StatusBadRequest, "Invalid JSON body."}},
}

// StatusFor maps err to the response the client sees. Anything unknown is
// an opaque 500.
func StatusFor(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if ve := validator.Extract(err); ve != nil {
		return HTTPError{Code: http.StatusBadRequest, Message: ve.Error()}
	}
	for _, k := range known {
		if errors.Is(err, k.err) {
			return k.resp
		}
	}
	return ErrInternal
}
