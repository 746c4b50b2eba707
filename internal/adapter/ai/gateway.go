// Package ai selects and builds the LLM gateway adapter.
package ai

import (
	"context"
	"log/slog"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/ai/gemini"
	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/ai/openrouter"
	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/ai/stub"
	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// NewGateway returns the gateway for cfg.LLMProvider. Without credentials, or
// if the provider client cannot be built, it returns an offline gateway so
// every fallback layer still runs; the cause is logged once here.
func NewGateway(ctx context.Context, cfg config.Config) domain.LLMGateway {
	if !cfg.LLMConfigured() {
		slog.Warn("LLM credentials missing, running with offline gateway",
			slog.String("provider", cfg.Provider()))
		return stub.New("no API key configured for provider " + cfg.Provider())
	}
	switch cfg.Provider() {
	case "gemini":
		c, err := gemini.New(ctx, cfg, "")
		if err != nil {
			slog.Error("gemini client init failed, running with offline gateway", slog.Any("error", err))
			return stub.New("gemini client unavailable")
		}
		slog.Info("llm gateway ready", slog.String("provider", "gemini"), slog.String("model", cfg.GeminiModel))
		return c
	default:
		slog.Info("llm gateway ready", slog.String("provider", "openrouter"), slog.String("model", cfg.LLMModel))
		return openrouter.New(cfg)
	}
}
