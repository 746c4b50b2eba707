package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// ParseStatus tags the outcome of cleaning a model reply.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseEmpty
	ParseNoJSON
	ParseInvalidJSON
)

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseEmpty:
		return "empty"
	case ParseNoJSON:
		return "no_json"
	case ParseInvalidJSON:
		return "invalid_json"
	}
	return "unknown"
}

// ParseResult is the tagged result of extracting a JSON object from a model
// reply. JSON is set only when Status is ParseOK.
type ParseResult struct {
	Status ParseStatus
	JSON   string
}

// OK reports whether a well-formed JSON object was found.
func (r ParseResult) OK() bool { return r.Status == ParseOK }

// Err returns nil for ParseOK and an ErrMalformedOutput wrapper otherwise.
func (r ParseResult) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrMalformedOutput, r.Status)
}

// ResponseCleaner pulls a JSON object out of free-form model output.
type ResponseCleaner struct{}

// NewResponseCleaner creates a new response cleaner.
func NewResponseCleaner() *ResponseCleaner {
	return &ResponseCleaner{}
}

// Clean strips markdown fences and surrounding prose, extracts the first
// balanced JSON object and repairs trailing commas.
func (rc *ResponseCleaner) Clean(raw string) ParseResult {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParseResult{Status: ParseEmpty}
	}
	s = rc.removeMarkdownBlocks(s)

	block := extractJSONBlock(s)
	if block == "" {
		return ParseResult{Status: ParseNoJSON}
	}
	if json.Valid([]byte(block)) {
		return ParseResult{Status: ParseOK, JSON: block}
	}
	if fixed := removeTrailingCommas(block); json.Valid([]byte(fixed)) {
		return ParseResult{Status: ParseOK, JSON: fixed}
	}
	return ParseResult{Status: ParseInvalidJSON}
}

// removeMarkdownBlocks returns the body of the first ``` fence, or s unchanged.
func (rc *ResponseCleaner) removeMarkdownBlocks(s string) string {
	open := strings.Index(s, "```")
	if open == -1 {
		return s
	}
	body := s[open+3:]
	// drop the info string ("json", "JSON", ...) unless the payload starts on the fence line
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		if first := strings.TrimSpace(body[:nl]); !strings.HasPrefix(first, "{") && !strings.HasPrefix(first, "[") {
			body = body[nl+1:]
		}
	}
	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// extractJSONBlock returns the first balanced {...} block, ignoring braces
// inside string literals. Unbalanced input yields "".
func extractJSONBlock(s string) string {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// removeTrailingCommas drops a comma that directly precedes } or ] outside
// string literals.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == ',':
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\r' || s[j] == '\t') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
