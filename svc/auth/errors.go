package auth

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authgate/core"
)

// ErrMissingSession matches a request without a session token. The error
// returned by the gate also carries the 400 response naming the cookie.
var ErrMissingSession = errors.New("auth.missing_session")

var (
	ErrTheftDetected = core.NewHTTPError(http.StatusGone, "Anti-Cookie theft has removed this session.")
	ErrAccountGone   = core.NewHTTPError(http.StatusGone, "User does not exist anymore.")

	ErrInvalidCredentials = core.NewHTTPError(http.StatusUnauthorized, "Could not find match.")
	ErrPasswordNotEnabled = core.NewHTTPError(http.StatusBadRequest,
		"Password authentication is not a viable authentication for this user.")
	ErrTooManyAttempts = core.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later.")

	ErrAlreadyVerified         = core.NewHTTPError(http.StatusBadRequest, "User is already verified.")
	ErrInvalidVerificationCode = core.NewHTTPError(http.StatusUnauthorized, "Invalid verification code.")

	ErrInvalidMethodTag   = core.NewHTTPError(http.StatusBadRequest, "All authentication methods must be a power of two.")
	ErrUnknownMethod      = core.NewHTTPError(http.StatusNotFound, "Authentication method not found.")
	ErrInvalidMethodValue = core.NewHTTPError(http.StatusBadRequest, "Authentication value must not be empty.")
)

func missingSession(cookieName string) error {
	return errors.Join(ErrMissingSession,
		core.NewHTTPError(http.StatusBadRequest, "'"+cookieName+"' cookie not found"))
}
