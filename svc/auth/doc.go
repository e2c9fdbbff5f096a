// Package auth guards HTTP handlers with fingerprinted session tokens and
// implements the account lifecycle around them.
//
// Gate.Middleware reads the session token, resolves its owner and, for
// versioned tokens, compares the token fingerprint with the presenting
// client. A token that scores at or below the matcher threshold is treated
// as stolen: its session is deleted and the request fails with 410.
//
// Service covers registration, password login, verification, logout and
// authentication method management. Errors returned by both are either
// package sentinels understood by core.StatusFor or core.HTTPError values.
package auth
