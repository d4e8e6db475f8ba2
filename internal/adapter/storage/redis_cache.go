package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	levelKeyPrefix = "stock-level:"

	// write-through keeps entries fresh; the TTL only bounds drift if a
	// delete or refresh is ever lost
	levelTTL = time.Hour
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) SetLevel(ctx context.Context, productID uuid.UUID, level int) error {
	return c.client.Set(ctx, levelKey(productID), level, levelTTL).Err()
}

func (c *RedisCache) GetLevel(ctx context.Context, productID uuid.UUID) (int, bool, error) {
	level, err := c.client.Get(ctx, levelKey(productID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return level, true, nil
}

func (c *RedisCache) DeleteLevel(ctx context.Context, productID uuid.UUID) error {
	return c.client.Del(ctx, levelKey(productID)).Err()
}

func levelKey(productID uuid.UUID) string {
	return levelKeyPrefix + productID.String()
}
