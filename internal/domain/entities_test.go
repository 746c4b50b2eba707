package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstants(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"ErrInvalidArgument", ErrInvalidArgument, "invalid argument"},
		{"ErrUpstreamFailure", ErrUpstreamFailure, "upstream failure"},
		{"ErrUpstreamTimeout", ErrUpstreamTimeout, "upstream timeout"},
		{"ErrUpstreamUnavailable", ErrUpstreamUnavailable, "upstream unavailable"},
		{"ErrMalformedOutput", ErrMalformedOutput, "malformed model output"},
		{"ErrInternal", ErrInternal, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsGatewayFailure(t *testing.T) {
	assert.True(t, IsGatewayFailure(fmt.Errorf("op=x: %w", ErrUpstreamTimeout)))
	assert.True(t, IsGatewayFailure(fmt.Errorf("op=x: %w", ErrMalformedOutput)))
	assert.True(t, IsGatewayFailure(ErrUpstreamUnavailable))
	assert.False(t, IsGatewayFailure(ErrInvalidArgument))
	assert.False(t, IsGatewayFailure(errors.New("boom")))
}

func TestMessage_JSONRoundTripUsesFrontendShape(t *testing.T) {
	b, err := json.Marshal([]Message{UserMessage("hi"), AssistantMessage("hello")})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"user","content":"hi"},{"type":"ai","content":"hello"}]`, string(b))
}

func TestMessage_UnmarshalAliases(t *testing.T) {
	tests := []struct {
		in   string
		role Role
	}{
		{`{"type":"user","content":"a"}`, RoleUser},
		{`{"type":"ai","content":"a"}`, RoleAssistant},
		{`{"type":"assistant","content":"a"}`, RoleAssistant},
		{`{"role":"user","content":"a"}`, RoleUser},
		{`{"content":"a"}`, RoleAssistant},
		{`{"type":"USER","content":"a","id":"17","timestamp":"2024-01-01T00:00:00Z"}`, RoleUser},
	}
	for _, tt := range tests {
		var m Message
		require.NoError(t, json.Unmarshal([]byte(tt.in), &m), tt.in)
		assert.Equal(t, tt.role, m.Role, tt.in)
		assert.Equal(t, "a", m.Content)
	}
}

func TestMessage_UnmarshalRejectsUnknownType(t *testing.T) {
	var m Message
	err := json.Unmarshal([]byte(`{"type":"system","content":"x"}`), &m)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseDifficulty(t *testing.T) {
	assert.Equal(t, DifficultyAdvanced, ParseDifficulty(" Advanced "))
	assert.Equal(t, DifficultyIntermediate, ParseDifficulty("intermediate"))
	assert.Equal(t, DifficultyBeginner, ParseDifficulty("beginner/intermediate/advanced"))
	assert.Equal(t, DifficultyBeginner, ParseDifficulty(""))
}

func TestAssessmentType_Valid(t *testing.T) {
	assert.True(t, AssessmentAIGenerated.Valid())
	assert.True(t, AssessmentAISimplified.Valid())
	assert.True(t, AssessmentConversationAwareFallback.Valid())
	assert.False(t, AssessmentType("ai").Valid())
}

func TestTurnResponse_OmitsAbsentReport(t *testing.T) {
	b, err := json.Marshal(TurnResponse{Reply: "x", NextPhase: PhaseExploration, UserProfile: map[string]any{}})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "assessment\"")
	assert.Contains(t, string(b), `"phase":"exploration"`)
	assert.Contains(t, string(b), `"assessmentComplete":false`)
}
