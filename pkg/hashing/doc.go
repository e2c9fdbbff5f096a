// Package hashing fingerprints free-form strings such as client IPs and
// user-agent fields without keeping them in the clear.
//
// Hash is deterministic and fast but not cryptographically secure. It exists
// so a session token handed to the client can carry comparable signals about
// the device that requested it. Never use it for passwords or secrets; see
// the password package for that.
//
// # Usage
//
//	import "github.com/dmitrymomot/authgate/pkg/hashing"
//
//	h := hashing.Hash("203.0.113.7") // decimal string, e.g. "9184624040249234572"
//	if hashing.Equal(h, "203.0.113.7") {
//	    // same input
//	}
package hashing
