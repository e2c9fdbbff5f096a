package session

import "errors"

var (
	// ErrTokenMissing indicates the request carries no session token
	ErrTokenMissing = errors.New("session.token_missing")

	// ErrSessionNotFound indicates no session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates an empty token or owner id
	ErrInvalidSession = errors.New("session.invalid")

	// ErrStoreUnavailable indicates the backing store failed
	ErrStoreUnavailable = errors.New("session.store_unavailable")
)
