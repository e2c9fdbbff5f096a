// Package fingerprint decides whether the client presenting a session token
// is plausibly the client it was issued to.
//
// The token carries hashed signals captured at login: the client IP, every
// user-agent platform field and every extension token. On each request the
// same signals are recomputed and compared with what the token embeds. Each
// mismatch costs a fixed penalty:
//
//	penalty = 1 / (1 + 3*platforms + extensions)
//
// where the counts come from the token. The resulting ownership score starts
// at 1.0 and the token is accepted only while it stays above the threshold
// (0.6 by default). Tokens with richer fingerprints therefore tolerate more
// benign drift, such as a browser minor update or a mobile network IP change,
// before a single mismatch dominates.
//
// Platforms and extensions are paired by position and only up to the shorter
// of the two lists. Extra entries on either side are neither matched nor
// penalised.
//
// # Usage
//
//	m := fingerprint.NewMatcher()
//	res := m.Match(parsed, clientIP, useragent.Parse(r.UserAgent()))
//	if !res.Accepted {
//	    // revoke this session
//	}
package fingerprint
