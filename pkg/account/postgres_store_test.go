package account_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/account/accounttest"
	"github.com/dmitrymomot/authgate/pkg/pg"
)

func TestPostgresStore_Contract(t *testing.T) {
	connURL := os.Getenv("TEST_PG_CONN_URL")
	if connURL == "" {
		t.Skip("TEST_PG_CONN_URL not set")
	}

	ctx := context.Background()
	cfg := pg.Config{ConnectionString: connURL, RetryAttempts: 1, MigrationsTable: "authgate_test_migrations"}

	pool, err := pg.Connect(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pg.Migrate(ctx, pool, account.Migrations(), cfg, slog.New(slog.DiscardHandler)))

	store := account.NewPostgresStore(pool)
	accounttest.Run(t, func(t *testing.T) account.Store { return store })
}
