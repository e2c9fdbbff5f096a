package hashing

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the 64-bit xxhash digest of text rendered as a decimal string.
func Hash(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(text), 10)
}

// Equal reports whether digest is the Hash of text.
func Equal(digest, text string) bool {
	return digest == Hash(text)
}
