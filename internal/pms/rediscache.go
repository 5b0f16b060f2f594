package pms

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisCache is a ResponseCache backed by a shared Redis instance so that
// multiple replicas share one 5-minute response window against the PMS.
type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache creates a Redis-backed response cache.
func NewRedisCache(client *redis.Client, logger *zap.Logger) ResponseCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisCache{
		client: client,
		logger: logger,
	}
}

func (r *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn("redis cache get failed, treating as miss",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}
	return body, true
}

func (r *redisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, keyPrefix+key, body, ttl).Err(); err != nil {
		r.logger.Warn("redis cache set failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

const keyPrefix = "pmscache:"
