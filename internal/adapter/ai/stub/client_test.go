package stub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

func TestClient_AlwaysUnavailable(t *testing.T) {
	out, err := New("").Complete(context.Background(), "anything")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Empty(t, out)
	assert.Contains(t, err.Error(), "offline mode")

	_, err = New("LLM_API_KEY not set").Complete(context.Background(), "x")
	assert.Contains(t, err.Error(), "LLM_API_KEY not set")
}

func TestClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("").Complete(ctx, "x")
	require.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}
