// Package sessiontest provides the contract suite every session.Store
// implementation must pass.
package sessiontest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/session"
)

// Factory returns an empty store for a single subtest.
type Factory func(t *testing.T) session.Store

// Run exercises store semantics shared by all backends.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	ctx := context.Background()

	t.Run("get unknown token", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "tok-1", "owner-a"))

		owner, err := s.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "owner-a", owner)
	})

	t.Run("set rejects empty values", func(t *testing.T) {
		s := newStore(t)

		assert.ErrorIs(t, s.Set(ctx, "", "owner-a"), session.ErrInvalidSession)
		assert.ErrorIs(t, s.Set(ctx, "tok-1", ""), session.ErrInvalidSession)
	})

	t.Run("set overwrites owner", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "tok-1", "owner-a"))
		require.NoError(t, s.Set(ctx, "tok-1", "owner-b"))

		owner, err := s.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "owner-b", owner)

		// The token no longer belongs to owner-a.
		require.NoError(t, s.DropAll(ctx, "owner-a"))
		owner, err = s.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "owner-b", owner)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "tok-1", "owner-a"))
		require.NoError(t, s.Set(ctx, "tok-2", "owner-a"))
		require.NoError(t, s.Delete(ctx, "tok-1"))

		_, err := s.Get(ctx, "tok-1")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		owner, err := s.Get(ctx, "tok-2")
		require.NoError(t, err)
		assert.Equal(t, "owner-a", owner)
	})

	t.Run("delete unknown token", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Delete(ctx, "missing"))
	})

	t.Run("drop all is scoped to owner", func(t *testing.T) {
		s := newStore(t)

		// Interleave sessions of two owners.
		require.NoError(t, s.Set(ctx, "a-1", "owner-a"))
		require.NoError(t, s.Set(ctx, "b-1", "owner-b"))
		require.NoError(t, s.Set(ctx, "a-2", "owner-a"))
		require.NoError(t, s.Set(ctx, "b-2", "owner-b"))
		require.NoError(t, s.Set(ctx, "a-3", "owner-a"))

		require.NoError(t, s.DropAll(ctx, "owner-a"))

		for _, tok := range []string{"a-1", "a-2", "a-3"} {
			_, err := s.Get(ctx, tok)
			assert.ErrorIs(t, err, session.ErrSessionNotFound, tok)
		}
		for _, tok := range []string{"b-1", "b-2"} {
			owner, err := s.Get(ctx, tok)
			require.NoError(t, err, tok)
			assert.Equal(t, "owner-b", owner)
		}
	})

	t.Run("drop all unknown owner", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.DropAll(ctx, "nobody"))
	})

	t.Run("sessions after drop all are kept", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.Set(ctx, "a-1", "owner-a"))
		require.NoError(t, s.DropAll(ctx, "owner-a"))
		require.NoError(t, s.Set(ctx, "a-2", "owner-a"))

		owner, err := s.Get(ctx, "a-2")
		require.NoError(t, err)
		assert.Equal(t, "owner-a", owner)
	})

	t.Run("concurrent sets", func(t *testing.T) {
		s := newStore(t)

		const n = 50
		var wg sync.WaitGroup
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				owner := "owner-a"
				if i%2 == 1 {
					owner = "owner-b"
				}
				assert.NoError(t, s.Set(ctx, fmt.Sprintf("tok-%d", i), owner))
			}(i)
		}
		wg.Wait()

		require.NoError(t, s.DropAll(ctx, "owner-a"))

		for i := range n {
			owner, err := s.Get(ctx, fmt.Sprintf("tok-%d", i))
			if i%2 == 0 {
				assert.ErrorIs(t, err, session.ErrSessionNotFound)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, "owner-b", owner)
		}
	})
}
