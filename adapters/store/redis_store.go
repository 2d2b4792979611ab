package store

import (
	"context"
	"fmt"
	"time"

	"github.com/layer-3/aio/core"
	"github.com/layer-3/aio/ports"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces revocation keys
const DefaultRedisPrefix = "aio:revoked:"

// RedisStore is a Redis implementation of the Store interface
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client redis.Cmdable) ports.Store {
	return &RedisStore{
		client: client,
		prefix: DefaultRedisPrefix,
	}
}

// InvalidateToken marks a token as invalidated in Redis
func (s *RedisStore) InvalidateToken(ctx context.Context, tokenID string, expiry time.Duration) error {
	if expiry <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, s.prefix+tokenID, "1", expiry).Err(); err != nil {
		return fmt.Errorf("%w: invalidate token: %w", core.ErrStoreOperationFailed, err)
	}

	return nil
}

// IsTokenInvalidated checks if a token is invalidated in Redis
func (s *RedisStore) IsTokenInvalidated(ctx context.Context, tokenID string) (bool, error) {
	val, err := s.client.Exists(ctx, s.prefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check token invalidation: %w", core.ErrStoreOperationFailed, err)
	}

	return val > 0, nil
}
