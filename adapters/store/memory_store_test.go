package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreInvalidation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore().(*MemoryStore)
	s.now = func() time.Time { return now }

	revoked, err := s.IsTokenInvalidated(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.InvalidateToken(ctx, "jti-1", time.Minute))
	revoked, err = s.IsTokenInvalidated(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(time.Minute)
	revoked, err = s.IsTokenInvalidated(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryStoreKeepsLongestExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore().(*MemoryStore)
	s.now = func() time.Time { return now }

	require.NoError(t, s.InvalidateToken(ctx, "jti-1", time.Hour))
	require.NoError(t, s.InvalidateToken(ctx, "jti-1", time.Second))

	now = now.Add(time.Minute)
	revoked, err := s.IsTokenInvalidated(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestMemoryStoreSweepsLapsedEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore().(*MemoryStore)
	s.now = func() time.Time { return now }

	require.NoError(t, s.InvalidateToken(ctx, "old", time.Second))
	now = now.Add(time.Hour)
	require.NoError(t, s.InvalidateToken(ctx, "new", time.Second))

	assert.Len(t, s.invalidatedTokens, 1)
}
