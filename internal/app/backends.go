package app

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/httpserver"
	"github.com/dmitrymomot/authgate/pkg/mongo"
	"github.com/dmitrymomot/authgate/pkg/pg"
	"github.com/dmitrymomot/authgate/pkg/ratelimiter"
	"github.com/dmitrymomot/authgate/pkg/redis"
	"github.com/dmitrymomot/authgate/pkg/session"
)

// backends holds the opened stores and what is needed to release them.
type backends struct {
	accounts account.Store
	sessions session.Store
	limiter  ratelimiter.Limiter
	probes   []httpserver.Probe
	closers  []func(context.Context) error
}

func (b *backends) onClose(fn func(context.Context) error) {
	b.closers = append(b.closers, fn)
}

func (b *backends) close(ctx context.Context) error {
	var firstErr error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	b.closers = nil
	return firstErr
}

func openBackends(ctx context.Context, cfg Config, log *slog.Logger) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			_ = b.close(context.WithoutCancel(ctx))
		}
	}()

	if b.accounts, err = openAccounts(ctx, cfg, log, b); err != nil {
		return nil, err
	}

	var rdb *goredis.Client
	if cfg.needsRedis() {
		if rdb, err = redis.Connect(ctx, cfg.Redis); err != nil {
			return nil, err
		}
		b.onClose(func(context.Context) error { return rdb.Close() })
		b.probes = append(b.probes, redis.Healthcheck(rdb))
		log.InfoContext(ctx, "redis connected")
	}

	switch cfg.SessionStore {
	case BackendRedis:
		b.sessions = session.NewRedisStore(rdb,
			session.WithRedisPrefix(cfg.Session.RedisPrefix),
			session.WithRedisTTL(cfg.Session.TTL),
		)
	default:
		mem := session.NewMemoryStore(cfg.Session.CleanupInterval, session.WithMemoryTTL(cfg.Session.TTL))
		b.onClose(func(context.Context) error { return mem.Close() })
		b.sessions = mem
	}

	switch cfg.LimiterStore {
	case BackendRedis:
		b.limiter, err = ratelimiter.NewRedisLimiter(rdb, cfg.RateLimit)
	default:
		var local *ratelimiter.LocalLimiter
		if local, err = ratelimiter.NewLocalLimiter(cfg.RateLimit); err == nil {
			b.onClose(func(context.Context) error { return local.Close() })
			b.limiter = local
		}
	}
	if err != nil {
		return nil, fmt.Errorf("app: rate limiter: %w", err)
	}

	return b, nil
}

func openAccounts(ctx context.Context, cfg Config, log *slog.Logger, b *backends) (account.Store, error) {
	switch cfg.AccountStore {
	case BackendPostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		b.onClose(func(context.Context) error {
			pool.Close()
			return nil
		})
		b.probes = append(b.probes, pg.Healthcheck(pool))

		if err := pg.Migrate(ctx, pool, account.Migrations(), cfg.Postgres, log); err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "postgres account store ready")
		return account.NewPostgresStore(pool), nil

	case BackendMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		b.onClose(client.Disconnect)
		b.probes = append(b.probes, mongo.Healthcheck(client))

		store := account.NewMongoStore(client.Database(cfg.Mongo.Database))
		if err := store.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("app: mongo indexes: %w", err)
		}
		log.InfoContext(ctx, "mongo account store ready")
		return store, nil
	}

	log.WarnContext(ctx, "using in-memory account store; accounts are lost on restart")
	return account.NewMemoryStore(), nil
}
