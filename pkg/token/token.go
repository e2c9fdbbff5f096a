package token

import (
	"strings"

	"github.com/dmitrymomot/authgate/pkg/hashing"
	"github.com/dmitrymomot/authgate/pkg/useragent"
)

const (
	// Prefix marks tokens that embed a device fingerprint.
	Prefix = "s1"

	// NonceLength is the length of the random suffix.
	NonceLength = 32

	fieldSep     = "."
	platformSep  = "||"
	tripleSep    = "-"
	extensionSep = "_"
	fieldCount   = 5
)

// Platform is a hashed user-agent platform descriptor.
type Platform struct {
	Name    string
	Version string
	Details string
}

// Parsed is the decoded form of a token. It is never stored.
type Parsed struct {
	Prefix     string
	IP         string
	Platforms  []Platform
	Extensions []string
	Nonce      string
}

// IsVersioned reports whether tok uses the fingerprinted scheme.
func IsVersioned(tok string) bool {
	return strings.HasPrefix(tok, Prefix)
}

// Generate builds a versioned token for a client with the given IP and
// parsed User-Agent.
func Generate(ip string, ua useragent.UserAgent) (string, error) {
	nonce, err := RandomString(NonceLength)
	if err != nil {
		return "", err
	}

	platforms := make([]string, 0, len(ua.Platforms))
	for _, p := range ua.Platforms {
		platforms = append(platforms, strings.Join([]string{
			hashing.Hash(p.Name),
			hashing.Hash(p.Version),
			hashing.Hash(p.Details),
		}, tripleSep))
	}

	extensions := make([]string, 0, len(ua.Extensions))
	for _, e := range ua.Extensions {
		extensions = append(extensions, hashing.Hash(e))
	}

	return strings.Join([]string{
		Prefix,
		hashing.Hash(ip),
		strings.Join(platforms, platformSep),
		strings.Join(extensions, extensionSep),
		nonce,
	}, fieldSep), nil
}

// Parse decodes tok into its fields.
func Parse(tok string) (Parsed, error) {
	fields := strings.Split(tok, fieldSep)
	if len(fields) != fieldCount {
		return Parsed{}, ErrMalformedToken
	}

	parsed := Parsed{
		Prefix:     fields[0],
		IP:         fields[1],
		Platforms:  []Platform{},
		Extensions: []string{},
		Nonce:      fields[4],
	}

	for _, raw := range strings.Split(fields[2], platformSep) {
		parts := strings.Split(raw, tripleSep)
		if len(parts) != 3 {
			continue
		}
		parsed.Platforms = append(parsed.Platforms, Platform{
			Name:    parts[0],
			Version: parts[1],
			Details: parts[2],
		})
	}

	// An empty field means the client sent no extensions.
	if fields[3] != "" {
		parsed.Extensions = strings.Split(fields[3], extensionSep)
	}

	return parsed, nil
}
