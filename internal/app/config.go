package app

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/authgate/pkg/clientip"
	"github.com/dmitrymomot/authgate/pkg/email"
	"github.com/dmitrymomot/authgate/pkg/fingerprint"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/mongo"
	"github.com/dmitrymomot/authgate/pkg/password"
	"github.com/dmitrymomot/authgate/pkg/pg"
	"github.com/dmitrymomot/authgate/pkg/ratelimiter"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/pkg/session"
)

// Backend names accepted by ACCOUNT_STORE, SESSION_STORE and RATELIMIT_STORE.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendRedis    = "redis"
)

var ErrInvalidConfig = errors.New("app: invalid configuration")

// Config is the process configuration. Nested package configs read their
// own variables.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"authgate"`

	AccountStore string `env:"ACCOUNT_STORE" envDefault:"memory"`
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`
	LimiterStore string `env:"RATELIMIT_STORE" envDefault:"memory"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	SendEmails     bool `env:"EMAIL_ENABLED" envDefault:"true"`

	Log         logger.Config
	HTTP        httpserver.Config
	Session     session.Config
	Fingerprint fingerprint.Config
	Password    password.Config
	ClientIP    clientip.Config
	RateLimit   ratelimiter.Config
	Email       email.Config
	Postgres    pg.Config
	Mongo       mongo.Config
	Redis       redis.Config
}

func (c Config) validate() error {
	switch c.AccountStore {
	case BackendMemory, BackendPostgres, BackendMongo:
	default:
		return fmt.Errorf("%w: ACCOUNT_STORE %q", ErrInvalidConfig, c.AccountStore)
	}
	switch c.SessionStore {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: SESSION_STORE %q", ErrInvalidConfig, c.SessionStore)
	}
	switch c.LimiterStore {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: RATELIMIT_STORE %q", ErrInvalidConfig, c.LimiterStore)
	}
	return nil
}

func (c Config) needsRedis() bool {
	return c.SessionStore == BackendRedis || c.LimiterStore == BackendRedis
}
