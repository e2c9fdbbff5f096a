package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authgate/pkg/account"
	"github.com/dmitrymomot/authgate/svc/auth"
)

func TestAccountContext(t *testing.T) {
	t.Parallel()

	_, ok := auth.AccountFromContext(context.Background())
	assert.False(t, ok)
	assert.Panics(t, func() { auth.MustAccountFromContext(context.Background()) })

	acc := account.New("alice", "alice@example.com", account.Methods{account.PasswordAuthentication: "h"}, nil)
	ctx := auth.WithAccount(context.Background(), acc)

	got, ok := auth.AccountFromContext(ctx)
	assert.True(t, ok)
	assert.Same(t, acc, got)
	assert.Same(t, acc, auth.MustAccountFromContext(ctx))
}
