package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis. Tokens are stored under key
// "refresh_token:<userID>" with TTL equal to the refresh-token lifetime,
// so abandoned sessions self-clean even when logout is skipped.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. Prefix may be empty.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "refresh_token:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}

func (s *RedisStore) Put(ctx context.Context, userID, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// never store an already-expired entry
		ttl = time.Second
	}
	if err := s.client.Set(ctx, s.key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, userID string) (string, error) {
	v, err := s.client.Get(ctx, s.key(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("%w: get: %v", ErrStoreUnavailable, err)
	}
	return v, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: del: %v", ErrStoreUnavailable, err)
	}
	return nil
}
