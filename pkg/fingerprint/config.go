package fingerprint

// DefaultThreshold is the minimum ownership score (exclusive) for a token to
// be accepted.
const DefaultThreshold = 0.6

// Config holds matcher settings loaded from the environment.
type Config struct {
	Threshold float64 `env:"FINGERPRINT_THRESHOLD" envDefault:"0.6"`
}
