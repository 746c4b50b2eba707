package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	domainmocks "github.com/fairyhunter13/skillbridge-assessor/internal/domain/mocks"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(t *testing.T, next domain.LLMGateway, threshold int) (*CircuitBreaker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	g := WithCircuitBreaker(next, "test", threshold, time.Minute)
	cb, ok := g.(*CircuitBreaker)
	require.True(t, ok)
	cb.now = clock.now
	return cb, clock
}

func TestWithCircuitBreaker_DisabledReturnsNext(t *testing.T) {
	next := domainmocks.NewLLMGateway(t)
	assert.Same(t, next, WithCircuitBreaker(next, "test", 0, time.Minute))
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	next := domainmocks.NewLLMGateway(t)
	next.EXPECT().Complete(mock.Anything, mock.Anything).Return("", domain.ErrUpstreamFailure).Times(3)
	cb, _ := newTestBreaker(t, next, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := cb.Complete(ctx, "p")
		require.ErrorIs(t, err, domain.ErrUpstreamFailure)
	}
	assert.Equal(t, CircuitOpen, cb.State())

	_, err := cb.Complete(ctx, "p")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "circuit test is open")
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	next := domainmocks.NewLLMGateway(t)
	next.EXPECT().Complete(mock.Anything, "bad").Return("", domain.ErrUpstreamTimeout).Times(4)
	next.EXPECT().Complete(mock.Anything, "good").Return("ok", nil).Once()
	cb, _ := newTestBreaker(t, next, 3)
	ctx := context.Background()

	_, _ = cb.Complete(ctx, "bad")
	_, _ = cb.Complete(ctx, "bad")
	out, err := cb.Complete(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	_, _ = cb.Complete(ctx, "bad")
	_, _ = cb.Complete(ctx, "bad")
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	next := domainmocks.NewLLMGateway(t)
	next.EXPECT().Complete(mock.Anything, "bad").Return("", domain.ErrUpstreamFailure).Times(3)
	next.EXPECT().Complete(mock.Anything, "good").Return("ok", nil).Once()
	cb, clock := newTestBreaker(t, next, 2)
	ctx := context.Background()

	_, _ = cb.Complete(ctx, "bad")
	_, _ = cb.Complete(ctx, "bad")
	require.Equal(t, CircuitOpen, cb.State())

	clock.advance(2 * time.Minute)
	_, err := cb.Complete(ctx, "bad")
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Equal(t, CircuitOpen, cb.State(), "failed probe reopens")

	_, err = cb.Complete(ctx, "good")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable, "cooldown restarted")

	clock.advance(2 * time.Minute)
	out, err := cb.Complete(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_CancellationIsNotAFailure(t *testing.T) {
	next := domainmocks.NewLLMGateway(t)
	next.EXPECT().Complete(mock.Anything, mock.Anything).Return("", domain.ErrUpstreamTimeout).Times(3)
	cb, _ := newTestBreaker(t, next, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 3; i++ {
		_, err := cb.Complete(ctx, "p")
		require.ErrorIs(t, err, domain.ErrUpstreamTimeout)
	}
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(9).String())
}
