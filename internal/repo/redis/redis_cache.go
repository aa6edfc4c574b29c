package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/shelfmark/shelfmark/internal/domain/errors"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	switch {
	case err == redis.Nil:
		return "", domainErrors.ErrNotFound
	case err != nil:
		return "", domainErrors.WrapInternal(err, "cache get")
	default:
		return val, nil
	}
}

func (r *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, safeTTL(ttl)).Err(); err != nil {
		return domainErrors.WrapInternal(err, "cache set")
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return domainErrors.WrapInternal(err, "cache delete")
	}
	return nil
}

func safeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		// a non-positive TTL would make the key immortal
		return time.Minute
	}
	return ttl
}
