package account_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/pkg/account/accounttest"
	"github.com/dmitrymomot/authgate/pkg/mongo"
)

func TestMongoStore_Contract(t *testing.T) {
	connURL := os.Getenv("TEST_MONGODB_URL")
	if connURL == "" {
		t.Skip("TEST_MONGODB_URL not set")
	}

	ctx := context.Background()
	db, err := mongo.ConnectDatabase(ctx, mongo.Config{
		ConnectionURL: connURL,
		Database:      "authgate_test_" + uuid.NewString()[:8],
		RetryAttempts: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})

	store := account.NewMongoStore(db)
	require.NoError(t, store.EnsureIndexes(ctx))

	accounttest.Run(t, func(t *testing.T) account.Store { return store })
}
