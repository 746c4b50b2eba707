package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisQuestionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisQuestionCache(rdb, ttl), mr
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "1", Question: "Can you read a balance sheet?", Skill: "Financial Analysis"},
		{ID: "2", Question: "Have you used Excel pivot tables?", Skill: "Spreadsheets"},
	}
}

func TestRedisQuestionCache_RoundTrip(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Hour)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "Accounting")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, " Accounting ", sampleQuestions()))
	assert.True(t, mr.Exists(KeyPrefix+"accounting"))
	assert.Equal(t, time.Hour, mr.TTL(KeyPrefix+"accounting"))

	got, ok, err := c.Get(ctx, "ACCOUNTING")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, sampleQuestions(), got)
}

func TestRedisQuestionCache_Expires(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Law", sampleQuestions()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "Law")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisQuestionCache_CorruptValue(t *testing.T) {
	c, mr := newTestRedisCache(t, 0)
	require.NoError(t, mr.Set(KeyPrefix+"law", "not-json"))

	_, ok, err := c.Get(context.Background(), "Law")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestRedisQuestionCache_ServerDown(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	require.NoError(t, c.Ping(context.Background()))
	mr.Close()

	_, _, err := c.Get(context.Background(), "Law")
	require.Error(t, err)
	require.Error(t, c.Set(context.Background(), "Law", sampleQuestions()))
	require.Error(t, c.Ping(context.Background()))
}

func TestNewRedisClient(t *testing.T) {
	rdb, err := NewRedisClient("redis://localhost:6379/2")
	require.NoError(t, err)
	assert.Equal(t, 2, rdb.Options().DB)
	_ = rdb.Close()

	_, err = NewRedisClient("http://nope")
	require.Error(t, err)
}
