package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQuestionCache_RoundTripAndCopy(t *testing.T) {
	t.Parallel()
	c := NewMemoryQuestionCache(4, 0)
	ctx := context.Background()

	qs := sampleQuestions()
	require.NoError(t, c.Set(ctx, "Economics", qs))
	qs[0].Skill = "mutated"

	got, ok, err := c.Get(ctx, " economics ")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Financial Analysis", got[0].Skill)

	got[1].Skill = "mutated"
	again, _, _ := c.Get(ctx, "Economics")
	assert.Equal(t, "Spreadsheets", again[1].Skill)
}

func TestMemoryQuestionCache_FIFOEviction(t *testing.T) {
	t.Parallel()
	c := NewMemoryQuestionCache(2, 0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", sampleQuestions()))
	require.NoError(t, c.Set(ctx, "b", sampleQuestions()))
	require.NoError(t, c.Set(ctx, "a", sampleQuestions())) // overwrite keeps position
	require.NoError(t, c.Set(ctx, "c", sampleQuestions()))

	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "b")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryQuestionCache_TTL(t *testing.T) {
	t.Parallel()
	c := NewMemoryQuestionCache(2, time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "Law", sampleQuestions()))
	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "Law")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = c.Get(ctx, "Law")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryQuestionCache_Concurrent(t *testing.T) {
	t.Parallel()
	c := NewMemoryQuestionCache(8, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			course := fmt.Sprintf("course-%d", i%12)
			_ = c.Set(ctx, course, sampleQuestions())
			_, _, _ = c.Get(ctx, course)
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 8)
}
