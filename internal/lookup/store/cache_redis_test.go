package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninlookup/internal/lookup/models"
	id "ninlookup/pkg/domain"
	"ninlookup/pkg/platform/sentinel"
)

func newTestCache(t *testing.T) (*RedisStatusCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStatusCache(client, time.Minute), mr
}

func completedRecord(t *testing.T) *models.VerificationRequest {
	t.Helper()
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	rec, err := models.NewVerificationRequest(id.NewVerificationID(), id.NewReference(), models.MethodNIN,
		models.Payload{models.FieldNIN: "00000000000"}, "mock", "10.0.0.1", "curl", now)
	require.NoError(t, err)
	require.NoError(t, rec.Complete(models.SuccessOutcome(map[string]any{"status": "ipe"}), now.Add(time.Second)))
	return rec
}

func TestRedisStatusCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss is not found", func(t *testing.T) {
		cache, _ := newTestCache(t)
		_, err := cache.Get(ctx, id.NewReference())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("round trips completed record without identity data", func(t *testing.T) {
		cache, mr := newTestCache(t)
		rec := completedRecord(t)
		require.NoError(t, cache.Put(ctx, rec))

		raw, err := mr.Get(statusKeyPrefix + rec.Ref.String())
		require.NoError(t, err)
		assert.NotContains(t, raw, "00000000000")
		assert.NotContains(t, raw, "10.0.0.1")

		got, err := cache.Get(ctx, rec.Ref)
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, "ipe", got.Status)
		assert.Equal(t, "mock", got.Provider)
		assert.Equal(t, map[string]any{"status": "ipe"}, got.Result)
		assert.Empty(t, got.Error)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("pending records are skipped", func(t *testing.T) {
		cache, mr := newTestCache(t)
		rec, err := models.NewVerificationRequest(id.NewVerificationID(), id.NewReference(), models.MethodNIN,
			nil, "mock", "", "", time.Now())
		require.NoError(t, err)

		require.NoError(t, cache.Put(ctx, rec))
		assert.False(t, mr.Exists(statusKeyPrefix+rec.Ref.String()))
	})

	t.Run("entries expire", func(t *testing.T) {
		cache, mr := newTestCache(t)
		rec := completedRecord(t)
		require.NoError(t, cache.Put(ctx, rec))

		mr.FastForward(2 * time.Minute)

		_, err := cache.Get(ctx, rec.Ref)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("corrupt entry is an error", func(t *testing.T) {
		cache, mr := newTestCache(t)
		ref := id.NewReference()
		require.NoError(t, mr.Set(statusKeyPrefix+ref.String(), "not-json"))

		_, err := cache.Get(ctx, ref)
		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrNotFound)
	})
}
