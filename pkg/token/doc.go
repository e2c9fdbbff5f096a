// Package token encodes and decodes browser session tokens.
//
// A versioned token carries a hashed fingerprint of the device that logged
// in, so it can be re-checked on every request without storing the raw IP or
// User-Agent server-side:
//
//	s1.<ip>.<name-version-details>||<name-version-details>.<ext>_<ext>.<nonce>
//
// Every fingerprint field is a hashing.Hash digest. The nonce is 32 random
// alphanumeric characters, so two logins from the same device still get
// distinct tokens.
//
// Parse is permissive about the platform list (a triple that does not have
// exactly three parts is dropped) but strict about the overall shape: any
// field count other than five yields ErrMalformedToken.
//
// Tokens that do not start with the "s1" prefix are treated as opaque and are
// never fingerprint-checked; use IsVersioned to tell them apart.
//
// # Usage
//
//	tok, err := token.Generate(clientIP, useragent.Parse(r.UserAgent()))
//	if err != nil {
//	    return err
//	}
//
//	parsed, err := token.Parse(tok)
//	if errors.Is(err, token.ErrMalformedToken) {
//	    // reject with 400
//	}
package token
