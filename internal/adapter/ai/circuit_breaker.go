package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	// CircuitClosed lets every call through.
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects calls until the cooldown has passed.
	CircuitOpen
	// CircuitHalfOpen lets a single probe call through.
	CircuitHalfOpen
)

// String returns a string representation of the circuit state
func (cs CircuitState) String() string {
	switch cs {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker wraps an LLM gateway. After threshold consecutive gateway
// failures it rejects calls with domain.ErrUpstreamUnavailable for the
// cooldown, so report and question fallbacks run without waiting on a dead
// provider. Caller cancellations are not counted as failures.
type CircuitBreaker struct {
	next      domain.LLMGateway
	name      string
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu            sync.Mutex
	state         CircuitState
	failures      int
	openedAt      time.Time
	probeInFlight bool
}

// WithCircuitBreaker decorates next. A non-positive threshold disables the
// breaker and returns next unchanged.
func WithCircuitBreaker(next domain.LLMGateway, name string, threshold int, cooldown time.Duration) domain.LLMGateway {
	if threshold <= 0 {
		return next
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	observability.ObserveBreakerState(name, int(CircuitClosed))
	return &CircuitBreaker{next: next, name: name, threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Complete implements domain.LLMGateway.
func (cb *CircuitBreaker) Complete(ctx context.Context, prompt string) (string, error) {
	if !cb.allow() {
		return "", fmt.Errorf("op=ai.CircuitBreaker.Complete: %w: circuit %s is open", domain.ErrUpstreamUnavailable, cb.name)
	}
	out, err := cb.next.Complete(ctx, prompt)
	switch {
	case err == nil:
		cb.recordSuccess()
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled):
		cb.release()
	default:
		cb.recordFailure()
	}
	return out, err
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if cb.now().Sub(cb.openedAt) < cb.cooldown {
			return false
		}
		cb.setState(CircuitHalfOpen)
		cb.probeInFlight = true
		return true
	default:
		if cb.probeInFlight {
			return false
		}
		cb.probeInFlight = true
		return true
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.probeInFlight = false
	if cb.state != CircuitClosed {
		slog.Info("circuit breaker closed after successful probe", slog.String("gateway", cb.name))
		cb.setState(CircuitClosed)
	}
}

func (cb *CircuitBreaker) recordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	cb.probeInFlight = false
	if cb.state == CircuitHalfOpen || cb.failures >= cb.threshold {
		if cb.state != CircuitOpen {
			slog.Warn("circuit breaker opened due to consecutive failures",
				slog.String("gateway", cb.name),
				slog.Int("failure_count", cb.failures),
				slog.Int("threshold", cb.threshold))
		}
		cb.openedAt = cb.now()
		cb.setState(CircuitOpen)
	}
}

// release frees a half-open probe slot without judging the provider.
func (cb *CircuitBreaker) release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probeInFlight = false
}

func (cb *CircuitBreaker) setState(s CircuitState) {
	cb.state = s
	observability.ObserveBreakerState(cb.name, int(s))
}
