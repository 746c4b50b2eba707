// Package stub provides an offline gateway for local runs and tests.
package stub

import (
	"context"
	"fmt"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// Client fails every call with domain.ErrUpstreamUnavailable, so callers
// always take their fallback paths. It makes no network calls.
type Client struct {
	reason string
}

// New returns an offline gateway. reason is reported in every error.
func New(reason string) *Client {
	if reason == "" {
		reason = "offline mode"
	}
	return &Client{reason: reason}
}

// Complete implements domain.LLMGateway.
func (c *Client) Complete(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("op=stub.Complete: %w: %v", domain.ErrUpstreamTimeout, err)
	}
	return "", fmt.Errorf("op=stub.Complete: %w: %s", domain.ErrUpstreamUnavailable, c.reason)
}
