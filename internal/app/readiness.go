package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
)

// BuildReadinessChecks returns the redis and llm readiness checks. The redis
// check is nil when no Redis client is in use, so /readyz skips it.
func BuildReadinessChecks(cfg config.Config, rdb *redis.Client) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	var redisCheck func(ctx context.Context) error
	if rdb != nil {
		redisCheck = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	llmCheck := func(_ context.Context) error {
		if !cfg.LLMConfigured() {
			return fmt.Errorf("llm api key not configured for provider %s", cfg.Provider())
		}
		return nil
	}
	return redisCheck, llmCheck
}
