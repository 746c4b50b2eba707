package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

type memoryEntry struct {
	questions []domain.Question
	expires   time.Time
}

// MemoryQuestionCache is a bounded in-process cache with FIFO eviction.
// It is safe for concurrent use.
type MemoryQuestionCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu  sync.Mutex
	m   map[string]memoryEntry
	ord []string
}

// NewMemoryQuestionCache builds a cache holding at most capacity courses.
// A non-positive capacity defaults to 256; a non-positive ttl never expires.
func NewMemoryQuestionCache(capacity int, ttl time.Duration) *MemoryQuestionCache {
	if capacity <= 0 {
		capacity = 256
	}
	return &MemoryQuestionCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		m:        make(map[string]memoryEntry, capacity),
		ord:      make([]string, 0, capacity),
	}
}

// Get implements domain.QuestionCache.
func (c *MemoryQuestionCache) Get(_ context.Context, course string) ([]domain.Question, bool, error) {
	k := config.NormalizeCourse(course)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[k]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && c.now().After(e.expires) {
		c.removeLocked(k)
		return nil, false, nil
	}
	return append([]domain.Question(nil), e.questions...), true, nil
}

// Set implements domain.QuestionCache.
func (c *MemoryQuestionCache) Set(_ context.Context, course string, questions []domain.Question) error {
	k := config.NormalizeCourse(course)
	e := memoryEntry{questions: append([]domain.Question(nil), questions...)}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[k]; ok {
		c.m[k] = e
		return nil
	}
	if len(c.ord) >= c.capacity {
		oldest := c.ord[0]
		c.ord = c.ord[1:]
		delete(c.m, oldest)
	}
	c.m[k] = e
	c.ord = append(c.ord, k)
	return nil
}

// Len returns the number of cached courses.
func (c *MemoryQuestionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

func (c *MemoryQuestionCache) removeLocked(k string) {
	delete(c.m, k)
	for i, o := range c.ord {
		if o == k {
			c.ord = append(c.ord[:i], c.ord[i+1:]...)
			return
		}
	}
}
