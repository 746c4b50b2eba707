// Package openrouter implements domain.LLMGateway over an OpenRouter-compatible
// chat-completions API.
package openrouter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/ai/tokencount"
	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

const provider = "openrouter"

// Client sends single-message chat completions. It never retries; callers
// own the retry policy.
type Client struct {
	rc          *resty.Client
	model       string
	temperature float64
}

// New builds a client from cfg. The HTTP transport is traced with otelhttp.
func New(cfg config.Config) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.LLMBaseURL, "/")).
		SetTimeout(cfg.LLMTimeout).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetAuthToken(cfg.LLMAPIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("HTTP-Referer", cfg.LLMReferer).
		SetHeader("X-Title", cfg.LLMTitle)
	return &Client{rc: rc, model: cfg.LLMModel, temperature: cfg.LLMTemperature}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// Complete implements domain.LLMGateway.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	lg := observability.LoggerFromContext(ctx)
	start := time.Now()

	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: c.temperature,
		}).
		Post("/chat/completions")
	if err != nil {
		reason, sentinel := classifyTransportError(ctx, err)
		observability.ObserveAIRequest(provider, "chat", time.Since(start), reason)
		lg.Warn("llm request failed", slog.String("provider", provider), slog.String("reason", reason), slog.Any("error", err))
		return "", fmt.Errorf("op=openrouter.Complete: %w: %v", sentinel, err)
	}

	body := resp.String()
	if !resp.IsSuccess() {
		reason := fmt.Sprintf("status_%d", resp.StatusCode())
		observability.ObserveAIRequest(provider, "chat", time.Since(start), reason)
		lg.Warn("llm provider non-2xx",
			slog.String("provider", provider),
			slog.Int("status", resp.StatusCode()),
			slog.String("x_request_id", resp.Header().Get("X-Request-Id")),
			slog.String("body", snippet(body, 512)))
		return "", fmt.Errorf("op=openrouter.Complete: %w: status %d", domain.ErrUpstreamFailure, resp.StatusCode())
	}

	// OpenRouter reports some provider errors inside a 200 body.
	if msg := gjson.Get(body, "error.message"); msg.Exists() {
		observability.ObserveAIRequest(provider, "chat", time.Since(start), "provider_error")
		return "", fmt.Errorf("op=openrouter.Complete: %w: %s", domain.ErrUpstreamFailure, snippet(msg.String(), 256))
	}

	content := gjson.Get(body, "choices.0.message.content").String()
	if strings.TrimSpace(content) == "" {
		observability.ObserveAIRequest(provider, "chat", time.Since(start), "empty")
		return "", fmt.Errorf("op=openrouter.Complete: %w: empty completion", domain.ErrUpstreamFailure)
	}

	observability.ObserveAIRequest(provider, "chat", time.Since(start), "")
	c.observeTokens(body, prompt, content)
	if model := gjson.Get(body, "model").String(); model != "" && model != c.model {
		lg.Debug("model substitution detected", slog.String("requested_model", c.model), slog.String("actual_model", model))
	}
	return content, nil
}

// observeTokens prefers the provider's usage block and estimates otherwise.
func (c *Client) observeTokens(body, prompt, content string) {
	usage := gjson.Get(body, "usage")
	if usage.Get("prompt_tokens").Exists() {
		observability.ObserveAITokens(provider, int(usage.Get("prompt_tokens").Int()), int(usage.Get("completion_tokens").Int()))
		return
	}
	u := tokencount.Estimate(prompt, content, c.model)
	observability.ObserveAITokens(provider, u.PromptTokens, u.CompletionTokens)
}

// classifyTransportError maps a transport error to a metric reason and a
// domain sentinel. Deadline and cancellation are both timeouts.
func classifyTransportError(ctx context.Context, err error) (string, error) {
	var ne net.Error
	switch {
	case ctx.Err() != nil,
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &ne) && ne.Timeout():
		return "timeout", domain.ErrUpstreamTimeout
	default:
		return "transport", domain.ErrUpstreamFailure
	}
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
