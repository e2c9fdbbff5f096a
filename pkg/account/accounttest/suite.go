// Package accounttest provides the contract suite shared by account.Store
// backends. Names are randomised so the suite can run against a shared
// database.
package accounttest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/account"
)

// Factory returns a store for a single subtest.
type Factory func(t *testing.T) account.Store

// NewAccount builds an unverified password account with unique names.
func NewAccount(t *testing.T) *account.Account {
	t.Helper()

	suffix := uuid.NewString()[:8]
	code := "code-" + suffix
	return account.New(
		"user_"+suffix,
		"user_"+suffix+"@example.com",
		account.Methods{account.PasswordAuthentication: "hash-" + suffix},
		&code,
	)
}

// Run exercises the behaviour every Store must provide.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	ctx := context.Background()

	register := func(t *testing.T, s account.Store) *account.Account {
		t.Helper()
		acc := NewAccount(t)
		require.NoError(t, s.Register(ctx, acc))
		return acc
	}

	t.Run("register and look up", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)

		byID, err := s.GetByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, acc.Username, byID.Username)
		assert.Equal(t, acc.Email, byID.Email)
		assert.Equal(t, acc.Methods, byID.Methods)
		assert.False(t, byID.Verified())
		assert.Equal(t, acc.CreatedAt.Unix(), byID.CreatedAt.Unix())

		byName, err := s.GetByUsername(ctx, acc.Username)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, byName.ID)

		byEmail, err := s.GetByEmail(ctx, acc.Email)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, byEmail.ID)
	})

	t.Run("unknown account", func(t *testing.T) {
		s := newStore(t)
		id := uuid.New()

		_, err := s.GetByID(ctx, id)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
		_, err = s.GetByUsername(ctx, "nobody_"+id.String()[:8])
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
		_, err = s.GetByEmail(ctx, id.String()+"@example.com")
		assert.ErrorIs(t, err, account.ErrAccountNotFound)

		assert.ErrorIs(t, s.Delete(ctx, id), account.ErrAccountNotFound)
		assert.ErrorIs(t, s.Verify(ctx, id), account.ErrAccountNotFound)
		_, err = s.AuthenticationMethods(ctx, id)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
		assert.ErrorIs(t, s.UpdateAuthenticationMethod(ctx, id, account.GoogleAuthentication, "g"), account.ErrAccountNotFound)
		assert.ErrorIs(t, s.RemoveAuthenticationMethod(ctx, id, account.GoogleAuthentication), account.ErrAccountNotFound)
	})

	t.Run("duplicate username or email", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)

		sameName := NewAccount(t)
		sameName.Username = acc.Username
		assert.ErrorIs(t, s.Register(ctx, sameName), account.ErrDuplicateAccount)

		sameEmail := NewAccount(t)
		sameEmail.Email = acc.Email
		assert.ErrorIs(t, s.Register(ctx, sameEmail), account.ErrDuplicateAccount)
	})

	t.Run("register requires valid methods", func(t *testing.T) {
		s := newStore(t)

		none := NewAccount(t)
		none.Methods = account.Methods{}
		assert.ErrorIs(t, s.Register(ctx, none), account.ErrNoMethods)

		bad := NewAccount(t)
		bad.Methods = account.Methods{3: "x"}
		assert.ErrorIs(t, s.Register(ctx, bad), account.ErrInvalidTag)
	})

	t.Run("verify clears token", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)

		require.NoError(t, s.Verify(ctx, acc.ID))

		got, err := s.GetByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.True(t, got.Verified())
		assert.Nil(t, got.VerificationToken)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)

		require.NoError(t, s.Delete(ctx, acc.ID))

		_, err := s.GetByID(ctx, acc.ID)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)
		_, err = s.GetByUsername(ctx, acc.Username)
		assert.ErrorIs(t, err, account.ErrAccountNotFound)

		// Name and email are free again.
		again := NewAccount(t)
		again.Username, again.Email = acc.Username, acc.Email
		assert.NoError(t, s.Register(ctx, again))
	})

	t.Run("update adds and replaces methods", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)

		require.NoError(t, s.UpdateAuthenticationMethod(ctx, acc.ID, account.GitHubAuthentication, "gh-1"))
		require.NoError(t, s.UpdateAuthenticationMethod(ctx, acc.ID, account.PasswordAuthentication, "hash-2"))

		tags, err := s.AuthenticationMethods(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, []account.Tag{account.PasswordAuthentication, account.GitHubAuthentication}, tags)

		got, err := s.GetByID(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash-2", got.Methods[account.PasswordAuthentication])
		assert.Equal(t, "gh-1", got.Methods[account.GitHubAuthentication])

		assert.ErrorIs(t, s.UpdateAuthenticationMethod(ctx, acc.ID, 6, "x"), account.ErrInvalidTag)
	})

	t.Run("remove keeps the last method", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)

		assert.ErrorIs(t, s.RemoveAuthenticationMethod(ctx, acc.ID, account.PasswordAuthentication), account.ErrLastMethod)

		require.NoError(t, s.UpdateAuthenticationMethod(ctx, acc.ID, account.GoogleAuthentication, "g-1"))
		assert.ErrorIs(t, s.RemoveAuthenticationMethod(ctx, acc.ID, account.GitHubAuthentication), account.ErrMethodNotFound)

		require.NoError(t, s.RemoveAuthenticationMethod(ctx, acc.ID, account.PasswordAuthentication))

		tags, err := s.AuthenticationMethods(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, []account.Tag{account.GoogleAuthentication}, tags)
	})

	t.Run("concurrent removals leave one method", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)
		require.NoError(t, s.UpdateAuthenticationMethod(ctx, acc.ID, account.GoogleAuthentication, "g-1"))

		var wg sync.WaitGroup
		for _, tag := range []account.Tag{account.PasswordAuthentication, account.GoogleAuthentication} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.RemoveAuthenticationMethod(ctx, acc.ID, tag)
			}()
		}
		wg.Wait()

		tags, err := s.AuthenticationMethods(ctx, acc.ID)
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("returned accounts are copies", func(t *testing.T) {
		s := newStore(t)
		acc := register(t, s)

		got, err := s.GetByID(ctx, acc.ID)
		require.NoError(t, err)
		got.Methods[account.GitHubAuthentication] = "tampered"

		tags, err := s.AuthenticationMethods(ctx, acc.ID)
		require.NoError(t, err)
		assert.Equal(t, []account.Tag{account.PasswordAuthentication}, tags)
	})
}
