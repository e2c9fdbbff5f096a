// Package password hashes and verifies account passwords with argon2id.
//
// Hashes use the PHC string format
//
//	$argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<key>
//
// so cost parameters can be raised without invalidating stored hashes.
// An optional pepper is mixed into every hash and must stay stable for the
// lifetime of the stored hashes.
//
// Unpeppered $argon2i$ hashes from imported accounts verify as well.
// NeedsRehash reports them, along with hashes built at another cost.
package password
