package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher hashes passwords with a fixed cost configuration.
type Hasher struct {
	cfg Config
}

// NewHasher returns a hasher; zero fields in cfg take their defaults.
func NewHasher(cfg Config) *Hasher {
	return &Hasher{cfg: cfg.withDefaults()}
}

// Hash returns the PHC-encoded argon2id hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: salt: %w", err)
	}

	key := argon2.IDKey(h.secret(password), salt, h.cfg.Iterations, h.cfg.MemoryKiB, h.cfg.Parallelism, h.cfg.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.cfg.MemoryKiB, h.cfg.Iterations, h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches encoded. A malformed hash, or
// one whose cost is far above the configured cost, yields ErrInvalidHash.
//
// Unpeppered argon2i hashes from imported accounts are accepted; use
// NeedsRehash to replace them after a successful login.
func (h *Hasher) Verify(encoded, password string) (bool, error) {
	p, salt, want, err := decode(encoded)
	if err != nil {
		return false, err
	}
	if p.memory > h.cfg.MemoryKiB*4 || p.iterations > h.cfg.Iterations*4 {
		return false, ErrInvalidHash
	}

	var got []byte
	if p.variant == variantI {
		got = argon2.Key([]byte(password), salt, p.iterations, p.memory, p.threads, uint32(len(want)))
	} else {
		got = argon2.IDKey(h.secret(password), salt, p.iterations, p.memory, p.threads, uint32(len(want)))
	}
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// NeedsRehash reports whether encoded was produced with another variant or
// cost than the hasher's. Malformed hashes need a rehash too.
func (h *Hasher) NeedsRehash(encoded string) bool {
	p, _, key, err := decode(encoded)
	if err != nil {
		return true
	}
	return p.variant != variantID ||
		p.memory != h.cfg.MemoryKiB ||
		p.iterations != h.cfg.Iterations ||
		p.threads != h.cfg.Parallelism ||
		uint32(len(key)) != h.cfg.KeyLength
}

func (h *Hasher) secret(password string) []byte {
	return []byte(password + h.cfg.Pepper)
}

const (
	variantID = "argon2id"
	variantI  = "argon2i"
)

type params struct {
	variant    string
	memory     uint32
	iterations uint32
	threads    uint8
}

func decode(encoded string) (params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || (parts[1] != variantID && parts[1] != variantI) {
		return params{}, nil, nil, ErrInvalidHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return params{}, nil, nil, ErrInvalidHash
	}

	var (
		p       = params{variant: parts[1]}
		threads uint32
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &threads); err != nil {
		return params{}, nil, nil, ErrInvalidHash
	}
	if p.memory == 0 || p.iterations == 0 || threads == 0 || threads > 255 {
		return params{}, nil, nil, ErrInvalidHash
	}
	p.threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) < 8 {
		return params{}, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) < 16 || len(key) > 128 {
		return params{}, nil, nil, ErrInvalidHash
	}

	return p, salt, key, nil
}
