// Package gemini implements domain.LLMGateway with the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/genai"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/ai/tokencount"
	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

const provider = "gemini"

// Client wraps a genai client for single-prompt text generation.
type Client struct {
	models      *genai.Models
	model       string
	temperature float32
	timeout     time.Duration
}

// New builds a Gemini gateway. baseURL overrides the API endpoint and is
// empty in production.
func New(ctx context.Context, cfg config.Config, baseURL string) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.GeminiAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("op=gemini.New: %w", err)
	}
	return &Client{
		models:      client.Models,
		model:       cfg.GeminiModel,
		temperature: float32(cfg.LLMTemperature),
		timeout:     cfg.LLMTimeout,
	}, nil
}

// Complete implements domain.LLMGateway.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()

	res, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	})
	if err != nil {
		reason, sentinel := "transport", domain.ErrUpstreamFailure
		var apiErr genai.APIError
		var apiErrPtr *genai.APIError
		switch {
		case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
			reason, sentinel = "timeout", domain.ErrUpstreamTimeout
		case errors.As(err, &apiErr):
			reason = fmt.Sprintf("status_%d", apiErr.Code)
		case errors.As(err, &apiErrPtr):
			reason = fmt.Sprintf("status_%d", apiErrPtr.Code)
		}
		observability.ObserveAIRequest(provider, "generate", time.Since(start), reason)
		observability.LoggerFromContext(ctx).Warn("llm request failed",
			slog.String("provider", provider), slog.String("reason", reason), slog.Any("error", err))
		return "", fmt.Errorf("op=gemini.Complete: %w: %v", sentinel, err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		observability.ObserveAIRequest(provider, "generate", time.Since(start), "empty")
		return "", fmt.Errorf("op=gemini.Complete: %w: empty completion", domain.ErrUpstreamFailure)
	}
	observability.ObserveAIRequest(provider, "generate", time.Since(start), "")

	if um := res.UsageMetadata; um != nil && um.PromptTokenCount > 0 {
		observability.ObserveAITokens(provider, int(um.PromptTokenCount), int(um.CandidatesTokenCount))
	} else {
		u := tokencount.Estimate(prompt, text, c.model)
		observability.ObserveAITokens(provider, u.PromptTokens, u.CompletionTokens)
	}
	return text, nil
}
