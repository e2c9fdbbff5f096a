package fingerprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/fingerprint"
	"github.com/dmitrymomot/authgate/pkg/token"
	"github.com/dmitrymomot/authgate/pkg/useragent"
)

const (
	chromeUA = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/112.0.0.0 Safari/537.36"
	clientIP = "203.0.113.7"
)

func issue(t *testing.T, ip, ua string) token.Parsed {
	t.Helper()

	tok, err := token.Generate(ip, useragent.Parse(ua))
	require.NoError(t, err)

	parsed, err := token.Parse(tok)
	require.NoError(t, err)
	return parsed
}

func TestPenalty(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1.0, fingerprint.Penalty(0, 0), 1e-12)
	assert.InDelta(t, 1.0/9.0, fingerprint.Penalty(2, 2), 1e-12)
	assert.InDelta(t, 1.0/5.0, fingerprint.Penalty(1, 1), 1e-12)
}

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	m := fingerprint.NewMatcher()
	parsed := issue(t, clientIP, chromeUA)
	penalty := fingerprint.Penalty(2, 2)

	t.Run("identical client", func(t *testing.T) {
		t.Parallel()

		res := m.Match(parsed, clientIP, useragent.Parse(chromeUA))
		assert.InDelta(t, 1.0, res.Score, 1e-12)
		assert.Zero(t, res.Mismatches)
		assert.True(t, res.Accepted)
	})

	t.Run("ip change alone is tolerated", func(t *testing.T) {
		t.Parallel()

		res := m.Match(parsed, "198.51.100.1", useragent.Parse(chromeUA))
		assert.InDelta(t, 1.0-penalty, res.Score, 1e-12)
		assert.Equal(t, 1, res.Mismatches)
		assert.True(t, res.Accepted)
	})

	t.Run("one platform name corrupted", func(t *testing.T) {
		t.Parallel()

		ua := useragent.Parse(chromeUA)
		ua.Platforms[0].Name = "Netscape"

		res := m.Match(parsed, clientIP, ua)
		assert.InDelta(t, 1.0-penalty, res.Score, 1e-12)
		assert.True(t, res.Accepted)
	})

	t.Run("one platform fully changed costs three penalties", func(t *testing.T) {
		t.Parallel()

		ua := useragent.Parse(chromeUA)
		ua.Platforms[1] = useragent.Platform{Name: "x", Version: "y", Details: "z"}

		res := m.Match(parsed, clientIP, ua)
		assert.InDelta(t, 1.0-3*penalty, res.Score, 1e-12)
		assert.Equal(t, 3, res.Mismatches)
		assert.True(t, res.Accepted)
	})

	t.Run("enough corruption flips to reject", func(t *testing.T) {
		t.Parallel()

		ua := useragent.Parse(chromeUA)
		ua.Platforms[0].Name = "a"
		ua.Platforms[0].Version = "b"
		ua.Platforms[0].Details = "c"

		res := m.Match(parsed, "198.51.100.1", ua)
		assert.InDelta(t, 1.0-4*penalty, res.Score, 1e-12)
		assert.Less(t, res.Score, fingerprint.DefaultThreshold)
		assert.False(t, res.Accepted)
	})

	t.Run("extension mismatch", func(t *testing.T) {
		t.Parallel()

		ua := useragent.Parse(chromeUA)
		ua.Extensions[1] = "Safari/999"

		res := m.Match(parsed, clientIP, ua)
		assert.InDelta(t, 1.0-penalty, res.Score, 1e-12)
		assert.True(t, res.Accepted)
	})

	t.Run("extra entries are ignored", func(t *testing.T) {
		t.Parallel()

		ua := useragent.Parse(chromeUA + " Extra/1.0 Another/2.0")
		ua.Platforms = append(ua.Platforms, useragent.Platform{Name: "More"})

		res := m.Match(parsed, clientIP, ua)
		assert.InDelta(t, 1.0, res.Score, 1e-12)
		assert.True(t, res.Accepted)
	})

	t.Run("shorter presented lists are truncated", func(t *testing.T) {
		t.Parallel()

		// Only the first extension pairs up; the platforms pair with nothing.
		res := m.Match(parsed, clientIP, useragent.Parse("curl/8.0.1"))
		assert.InDelta(t, 1.0-penalty, res.Score, 1e-12)
		assert.True(t, res.Accepted)
	})
}

func TestMatcher_FewSignals(t *testing.T) {
	t.Parallel()

	parsed := issue(t, clientIP, "")
	m := fingerprint.NewMatcher()

	assert.True(t, m.Match(parsed, clientIP, useragent.Parse("")).Accepted)

	res := m.Match(parsed, "198.51.100.1", useragent.Parse(""))
	assert.InDelta(t, 0.0, res.Score, 1e-12)
	assert.False(t, res.Accepted)
}

func TestScore(t *testing.T) {
	t.Parallel()

	parsed := issue(t, clientIP, chromeUA)
	assert.InDelta(t, 1.0, fingerprint.Score(parsed, clientIP, useragent.Parse(chromeUA)), 1e-12)
}

func TestWithThreshold(t *testing.T) {
	t.Parallel()

	parsed := issue(t, clientIP, chromeUA)

	strict := fingerprint.NewMatcher(fingerprint.WithThreshold(0.95))
	assert.Equal(t, 0.95, strict.Threshold())
	assert.False(t, strict.Match(parsed, "198.51.100.1", useragent.Parse(chromeUA)).Accepted)

	ignored := fingerprint.NewMatcher(fingerprint.WithThreshold(1.5))
	assert.Equal(t, fingerprint.DefaultThreshold, ignored.Threshold())

	fromCfg := fingerprint.NewMatcherFromConfig(fingerprint.Config{Threshold: 0.7})
	assert.Equal(t, 0.7, fromCfg.Threshold())
}
