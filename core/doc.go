// Package core holds the HTTP plumbing shared by the handlers: the
// client-facing error type, JSON responses and a generic handler adapter.
//
// Handlers return (Response, error). StatusFor turns errors into an
// HTTPError; package sentinels such as session.ErrSessionNotFound or
// account.ErrDuplicateAccount map to fixed statuses, and every unknown
// error becomes an opaque 500 whose cause is only logged.
package core
