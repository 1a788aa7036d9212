package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venue-master/admin-console/pkg/cache"
)

const redisKeyPrefix = "console:credentials"

// Redis keeps one console session's credentials in a Redis hash.
// Key format: "console:credentials:{sessionID}". Each write refreshes the TTL.
type Redis struct {
	client *cache.RedisClient
	key    string
	ttl    time.Duration
}

// NewRedis returns a Store for sessionID backed by the given RedisClient.
func NewRedis(client *cache.RedisClient, sessionID string, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		key:    fmt.Sprintf("%s:%s", redisKeyPrefix, sessionID),
		ttl:    ttl,
	}
}

func (s *Redis) Get(ctx context.Context, key Key) (string, bool, error) {
	v, err := s.client.Client().HGet(ctx, s.key, string(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("tokenstore get: %w", err)
	}
	return v, true, nil
}

// Set writes the field and the TTL in one pipeline.
func (s *Redis) Set(ctx context.Context, key Key, value string) error {
	pipe := s.client.Client().TxPipeline()
	pipe.HSet(ctx, s.key, string(key), value)
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("tokenstore set: %w", err)
	}
	return nil
}

// Clear removes the fields with a single HDEL, which Redis applies atomically.
func (s *Redis) Clear(ctx context.Context, keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	fields := make([]string, len(keys))
	for i, k := range keys {
		fields[i] = string(k)
	}
	if err := s.client.Client().HDel(ctx, s.key, fields...).Err(); err != nil {
		return fmt.Errorf("tokenstore clear: %w", err)
	}
	return nil
}
