package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on top of Redis.
//
// Each token is stored under <prefix>:t:<token> with the owner id as value.
// Owners are indexed in a set under <prefix>:o:<owner> so DropAll is a
// direct lookup. Both keys share the session TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key namespace.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithRedisTTL sets the expiry of stored sessions. Zero disables expiry.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "session",
		ttl:    30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) tokenKey(token string) string {
	return s.prefix + ":t:" + token
}

func (s *RedisStore) ownerKey(ownerID string) string {
	return s.prefix + ":o:" + ownerID
}

// Get returns the owner of token.
func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	owner, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", errors.Join(ErrStoreUnavailable, err)
	}
	return owner, nil
}

// Set stores token for ownerID and indexes it under the owner.
func (s *RedisStore) Set(ctx context.Context, token, ownerID string) error {
	if token == "" || ownerID == "" {
		return ErrInvalidSession
	}

	// A token reassigned to a new owner must leave the old owner's index.
	previous, err := s.client.Get(ctx, s.tokenKey(token)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Join(ErrStoreUnavailable, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != "" && previous != ownerID {
			pipe.SRem(ctx, s.ownerKey(previous), token)
		}
		pipe.Set(ctx, s.tokenKey(token), ownerID, s.ttl)
		pipe.SAdd(ctx, s.ownerKey(ownerID), token)
		if s.ttl > 0 {
			pipe.Expire(ctx, s.ownerKey(ownerID), s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return nil
}

// Delete removes token and its index entry.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	owner, err := s.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.tokenKey(token))
		pipe.SRem(ctx, s.ownerKey(owner), token)
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return nil
}

// DropAll removes every token indexed under ownerID.
//
// The index is read before the delete, so a session created concurrently
// between the two steps survives. It still expires with its TTL.
func (s *RedisStore) DropAll(ctx context.Context, ownerID string) error {
	ownerKey := s.ownerKey(ownerID)

	tokens, err := s.client.SMembers(ctx, ownerKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return errors.Join(ErrStoreUnavailable, err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, s.tokenKey(token))
	}
	keys = append(keys, ownerKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	return nil
}
