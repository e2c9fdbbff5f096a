// Package account owns persisted account records and the authentication
// methods attached to them.
//
// An Account is identified by a UUID and carries a unique username, a unique
// email, a role bitmask and a map of authentication methods. Each method is
// keyed by a power-of-two Tag (PasswordAuthentication, GoogleAuthentication,
// ...) so the set of linked methods can be summarised as a single bitmask.
// A persisted account always holds at least one method; the last one cannot
// be removed.
//
// A non-nil VerificationToken marks the account as unverified.
//
// # Backends
//
// Store is implemented by:
//
//   - MemoryStore   – reference backend guarded by a single lock
//   - PostgresStore – pgx pool with parameterized, automatically prepared
//     statements; schema shipped as goose migrations in Migrations
//   - MongoStore    – one document per account with unique indexes
//
// All three pass the contract suite in the accounttest package.
//
// # Error Handling
//
//   - ErrAccountNotFound  – no account with the given key
//   - ErrDuplicateAccount – username or email already taken
//   - ErrLastMethod       – removing the only remaining method
//   - ErrMethodNotFound   – the account does not hold the method
//   - ErrInvalidTag       – tag is not a power of two
//   - ErrNoMethods        – registering an account without methods
//   - ErrStorage          – backend failure; the cause is joined
package account
