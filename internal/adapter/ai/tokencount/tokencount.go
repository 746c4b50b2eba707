// Package tokencount estimates prompt and completion token counts for the
// gateway metrics. It uses tiktoken-go with the offline BPE loader so it
// never touches the network; model ids from OpenRouter and Gemini are
// mapped onto the nearest OpenAI encoding, which is close enough for
// dashboards but not for billing.
package tokencount

import (
	"log/slog"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

const fallbackEncoding = "cl100k_base"

// Chat framing of a single-user-message request: 3 tokens around the
// message, 1 separator and 3 priming the assistant reply.
const chatOverhead = 3 + 1 + 3

// Usage is the estimated token count of one completion call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Total is prompt plus completion tokens.
func (u Usage) Total() int { return u.PromptTokens + u.CompletionTokens }

// encoders caches one *tiktoken.Tiktoken per encoding family.
var encoders sync.Map

// Estimate counts a one-message chat prompt and its completion for model.
// It never fails: without an encoder it falls back to ~4 bytes per token.
func Estimate(prompt, completion, model string) Usage {
	enc := encoderFor(model)
	if enc == nil {
		return Usage{PromptTokens: len(prompt)/4 + chatOverhead, CompletionTokens: len(completion) / 4}
	}
	return Usage{
		PromptTokens:     chatOverhead + len(enc.Encode("user", nil, nil)) + len(enc.Encode(prompt, nil, nil)),
		CompletionTokens: len(enc.Encode(completion, nil, nil)),
	}
}

// Count returns the raw token count of text, or -1 if no encoder loads.
func Count(text, model string) int {
	enc := encoderFor(model)
	if enc == nil {
		return -1
	}
	return len(enc.Encode(text, nil, nil))
}

func encoderFor(model string) *tiktoken.Tiktoken {
	family := encodingModel(model)
	if v, ok := encoders.Load(family); ok {
		return v.(*tiktoken.Tiktoken)
	}
	enc, err := tiktoken.EncodingForModel(family)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		slog.Warn("token encoder unavailable, estimating by length",
			slog.String("model", model), slog.Any("error", err))
		return nil
	}
	v, _ := encoders.LoadOrStore(family, enc)
	return v.(*tiktoken.Tiktoken)
}

// encodingModel maps a provider model id onto a tiktoken model name:
// "deepseek/deepseek-chat:free" → "gpt-4".
func encodingModel(model string) string {
	m := strings.ToLower(model)
	if i := strings.LastIndex(m, "/"); i >= 0 {
		m = m[i+1:]
	}
	m = strings.TrimSuffix(m, ":free")
	switch {
	case strings.Contains(m, "gpt-4o"):
		return "gpt-4o"
	case strings.Contains(m, "gpt-3.5"):
		return "gpt-3.5-turbo"
	default:
		return "gpt-4"
	}
}
