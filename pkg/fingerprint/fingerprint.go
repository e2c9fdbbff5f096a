package fingerprint

import (
	"github.com/dmitrymomot/authgate/pkg/hashing"
	"github.com/dmitrymomot/authgate/pkg/token"
	"github.com/dmitrymomot/authgate/pkg/useragent"
)

// Result is the outcome of a single match.
type Result struct {
	Score      float64
	Penalty    float64
	Mismatches int
	Accepted   bool
}

// Matcher scores presented tokens against the current request.
type Matcher struct {
	threshold float64
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the acceptance threshold. Values outside (0, 1]
// are ignored.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		if threshold > 0 && threshold <= 1 {
			m.threshold = threshold
		}
	}
}

// NewMatcher creates a Matcher with DefaultThreshold unless overridden.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewMatcherFromConfig creates a Matcher from loaded configuration.
func NewMatcherFromConfig(cfg Config, opts ...Option) *Matcher {
	return NewMatcher(append([]Option{WithThreshold(cfg.Threshold)}, opts...)...)
}

// Threshold returns the acceptance threshold in use.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match scores parsed against ip and ua and applies the threshold.
func (m *Matcher) Match(parsed token.Parsed, ip string, ua useragent.UserAgent) Result {
	res := score(parsed, ip, ua)
	res.Accepted = res.Score > m.threshold
	return res
}

// Score returns the ownership score of parsed for the given client.
func Score(parsed token.Parsed, ip string, ua useragent.UserAgent) float64 {
	return score(parsed, ip, ua).Score
}

// Penalty returns the per-mismatch weight for a token with the given number
// of platforms and extensions.
func Penalty(platforms, extensions int) float64 {
	return 1.0 / (1.0 + 3*float64(platforms) + float64(extensions))
}

func score(parsed token.Parsed, ip string, ua useragent.UserAgent) Result {
	res := Result{
		Score:   1.0,
		Penalty: Penalty(len(parsed.Platforms), len(parsed.Extensions)),
	}

	miss := func() {
		res.Score -= res.Penalty
		res.Mismatches++
	}

	if !hashing.Equal(parsed.IP, ip) {
		miss()
	}

	for i := 0; i < min(len(parsed.Platforms), len(ua.Platforms)); i++ {
		want, got := parsed.Platforms[i], ua.Platforms[i]
		if !hashing.Equal(want.Name, got.Name) {
			miss()
		}
		if !hashing.Equal(want.Version, got.Version) {
			miss()
		}
		if !hashing.Equal(want.Details, got.Details) {
			miss()
		}
	}

	for i := 0; i < min(len(parsed.Extensions), len(ua.Extensions)); i++ {
		if !hashing.Equal(parsed.Extensions[i], ua.Extensions[i]) {
			miss()
		}
	}

	return res
}
