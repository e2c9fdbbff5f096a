package auth

import (
	"context"

	"github.com/dmitrymomot/authgate/pkg/account"
)

type accountContextKey struct{}

// WithAccount stores the authenticated account in ctx.
func WithAccount(ctx context.Context, acc *account.Account) context.Context {
	return context.WithValue(ctx, accountContextKey{}, acc)
}

// AccountFromContext returns the account stored by the gate.
func AccountFromContext(ctx context.Context) (*account.Account, bool) {
	acc, ok := ctx.Value(accountContextKey{}).(*account.Account)
	return acc, ok && acc != nil
}

// MustAccountFromContext is AccountFromContext for handlers mounted behind
// the gate. It panics when no account is present.
func MustAccountFromContext(ctx context.Context) *account.Account {
	acc, ok := AccountFromContext(ctx)
	if !ok {
		panic("auth: no account in context; handler is not behind the gate")
	}
	return acc
}
