package store

import (
	"context"
	"testing"
	"time"

	"github.com/layer-3/aio/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStoreWrapsFailures(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	s := NewRedisStore(client)
	ctx := context.Background()

	_, err := s.IsTokenInvalidated(ctx, "jti-1")
	assert.ErrorIs(t, err, core.ErrStoreOperationFailed)

	assert.ErrorIs(t, s.InvalidateToken(ctx, "jti-1", time.Minute), core.ErrStoreOperationFailed)
}

func TestRedisStoreSkipsLapsedExpiry(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	// No round trip is made for a non-positive TTL
	assert.NoError(t, NewRedisStore(client).InvalidateToken(context.Background(), "jti-1", 0))
}
