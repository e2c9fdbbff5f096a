// Package session stores live browser sessions and moves their tokens
// between client and server.
//
// A session entry is a single mapping from an opaque token to the id of the
// account that owns it. Several entries may point at the same account, one
// per device. Entries are removed one at a time on logout or theft
// revocation, and all at once with DropAll when the owner logs out
// everywhere, verifies, or is deleted.
//
// # Architecture
//
// A Manager ties three pieces together:
//
//	┌────────┐   token   ┌────────────┐
//	│ Client │ ────────► │  Transport │ cookie / header
//	└────────┘           └────────────┘
//	       ▲                   │
//	       │                   ▼
//	┌─────────────────────────────────┐
//	│            Manager              │ issues fingerprinted tokens
//	└─────────────────────────────────┘
//	       │   Get / Set / Delete / DropAll
//	       ▼
//	┌────────┐
//	│ Store  │ (memory, redis)
//	└────────┘
//
// Every Store implementation satisfies the same contract, checked by the
// shared suite in the sessiontest package. MemoryStore is a reference
// implementation guarded by a single lock. RedisStore keeps one key per token
// plus a per-owner index set so DropAll does not scan the keyspace.
//
// # Usage
//
//	store := session.NewRedisStore(rdb, session.WithRedisTTL(cfg.TTL))
//	manager := session.NewFromConfig(cfg, session.WithStore(store))
//
//	issued, err := manager.Create(ctx, clientIP, r.UserAgent(), accountID)
//	err = manager.Attach(w, issued.Token, issued.TTL)
//
// # Configuration
//
// Config is populated from the environment (SESSION_COOKIE_NAME, SESSION_TTL,
// SESSION_SECURE_COOKIES, SESSION_HEADER_NAME, ...). Setting
// SESSION_HEADER_NAME accepts the token in that header as well as the cookie. The default cookie name is "xiler-session"
// and the default lifetime is 30 days.
//
// # Error Handling
//
//   - ErrTokenMissing     – the request carries no session token
//   - ErrSessionNotFound  – the token is unknown or expired
//   - ErrInvalidSession   – empty token or owner passed to a store
//   - ErrStoreUnavailable – the backend failed; the cause is joined
package session
