package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fiber-shop-api/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*RedisProductCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisProductCache(client), mr
}

func TestProductCache_SetGet(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()
	id := uuid.NewString()

	product := &models.Product{
		Name:        "Trail Shoe",
		Price:       89.90,
		Stock:       12,
		Sizes:       []string{"41", "42"},
		IsPublished: true,
	}
	require.NoError(t, c.Set(ctx, id, product))

	got, err := c.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Trail Shoe", got.Name)
	assert.Equal(t, 12, got.Stock)
	assert.True(t, got.IsPublished)
}

func TestProductCache_Miss(t *testing.T) {
	c, _ := setupTestCache(t)

	got, err := c.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestProductCache_InvalidPayload(t *testing.T) {
	c, mr := setupTestCache(t)
	id := uuid.NewString()

	mr.Set(cacheKey(id), "not json")

	_, err := c.Get(context.Background(), id)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_Delete(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()
	id := uuid.NewString()

	data, _ := json.Marshal(&models.Product{Name: "Gone"})
	mr.Set(cacheKey(id), string(data))

	require.NoError(t, c.Delete(ctx, id))

	_, err := c.Get(ctx, id)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestProductCache_EntriesExpire(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, c.Set(ctx, id, &models.Product{Name: "Short lived"}))

	mr.FastForward(21 * time.Minute) // past base TTL plus max jitter

	_, err := c.Get(ctx, id)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
