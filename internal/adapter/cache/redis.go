// Package cache implements domain.QuestionCache on Redis and in process memory.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// KeyPrefix namespaces question banks in a shared Redis.
const KeyPrefix = "skillbridge:questions:"

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("op=cache.NewRedisClient: %w", err)
	}
	return redis.NewClient(opts), nil
}

// RedisQuestionCache stores question banks as JSON strings with a TTL.
type RedisQuestionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisQuestionCache wraps rdb. A non-positive ttl stores keys without expiry.
func NewRedisQuestionCache(rdb *redis.Client, ttl time.Duration) *RedisQuestionCache {
	if ttl < 0 {
		ttl = 0
	}
	return &RedisQuestionCache{rdb: rdb, ttl: ttl}
}

func redisKey(course string) string { return KeyPrefix + config.NormalizeCourse(course) }

// Get implements domain.QuestionCache.
func (c *RedisQuestionCache) Get(ctx context.Context, course string) ([]domain.Question, bool, error) {
	raw, err := c.rdb.Get(ctx, redisKey(course)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("op=cache.redis.Get: %w", err)
	}
	var qs []domain.Question
	if err := json.Unmarshal(raw, &qs); err != nil {
		return nil, false, fmt.Errorf("op=cache.redis.Get: decode: %w", err)
	}
	return qs, true, nil
}

// Set implements domain.QuestionCache.
func (c *RedisQuestionCache) Set(ctx context.Context, course string, questions []domain.Question) error {
	b, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("op=cache.redis.Set: encode: %w", err)
	}
	if err := c.rdb.Set(ctx, redisKey(course), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("op=cache.redis.Set: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *RedisQuestionCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
