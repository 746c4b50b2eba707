package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	cfg := config.Config{GeminiAPIKey: "g-test", GeminiModel: "gemini-2.0-flash", LLMTemperature: 0.7, LLMTimeout: 2 * time.Second}
	c, err := New(context.Background(), cfg, ts.URL+"/")
	require.NoError(t, err)
	return c
}

func TestComplete_Success(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(b), "tell me about Go")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Go is great."}]}}],"usageMetadata":{"promptTokenCount":4,"candidatesTokenCount":3}}`)
	})

	out, err := c.Complete(context.Background(), "tell me about Go")
	require.NoError(t, err)
	assert.Equal(t, "Go is great.", out)
}

func TestComplete_Non2xx(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`)
	})

	_, err := c.Complete(context.Background(), "hi")
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestComplete_EmptyCandidate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	})

	_, err := c.Complete(context.Background(), "hi")
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestComplete_CancelledContext(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Complete(ctx, "hi")
	require.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}
