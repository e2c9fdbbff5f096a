package account

import (
	"slices"
	"strconv"
)

// Tag identifies an authentication method. Valid tags are powers of two.
type Tag int16

const (
	PasswordAuthentication Tag = 1 << iota
	GoogleAuthentication
	GitHubAuthentication
)

// IsPowerOfTwo reports whether x is a positive power of two.
func IsPowerOfTwo[T ~int | ~int16 | ~int32 | ~int64 | ~uint | ~uint16 | ~uint32 | ~uint64](x T) bool {
	return x > 0 && x&(x-1) == 0
}

// Valid reports whether t is usable as a method tag.
func (t Tag) Valid() bool {
	return IsPowerOfTwo(t)
}

func (t Tag) String() string {
	switch t {
	case PasswordAuthentication:
		return "password"
	case GoogleAuthentication:
		return "google"
	case GitHubAuthentication:
		return "github"
	}
	return strconv.Itoa(int(t))
}

// Methods maps method tags to their credential: a password hash or the
// account id at the provider.
type Methods map[Tag]string

// Mask returns the OR of all held tags.
func (m Methods) Mask() Tag {
	var mask Tag
	for tag := range m {
		mask |= tag
	}
	return mask
}

// Tags returns the held tags in ascending order.
func (m Methods) Tags() []Tag {
	tags := make([]Tag, 0, len(m))
	for tag := range m {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Clone returns a copy of m.
func (m Methods) Clone() Methods {
	out := make(Methods, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m Methods) validate() error {
	if len(m) == 0 {
		return ErrNoMethods
	}
	for tag := range m {
		if !tag.Valid() {
			return ErrInvalidTag
		}
	}
	return nil
}
