package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"fiber-shop-api/models"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// ProductCache holds catalog detail reads. Cart enrichment never goes
// through it; stock checks always hit the database.
type ProductCache interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	Set(ctx context.Context, id string, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type RedisProductCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisProductCache(client *redis.Client) *RedisProductCache {
	return &RedisProductCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

func (r *RedisProductCache) Get(ctx context.Context, id string) (*models.Product, error) {
	data, err := r.client.Get(ctx, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return &product, nil
}

func (r *RedisProductCache) Set(ctx context.Context, id string, product *models.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	// Jitter spreads expiry so a popular catalog page doesn't refill at once.
	ttl := r.baseTTL + time.Duration(rand.Intn(5))*time.Minute
	if err := r.client.Set(ctx, cacheKey(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisProductCache) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}
