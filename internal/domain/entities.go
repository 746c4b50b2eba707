package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUpstreamFailure     = errors.New("upstream failure")
	ErrUpstreamTimeout     = errors.New("upstream timeout")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrMalformedOutput     = errors.New("malformed model output")
	ErrInternal            = errors.New("internal error")
)

// IsGatewayFailure reports whether err came from the LLM gateway or its output.
// These never reach the end user; callers absorb them with a fallback.
func IsGatewayFailure(err error) bool {
	return errors.Is(err, ErrUpstreamFailure) ||
		errors.Is(err, ErrUpstreamTimeout) ||
		errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, ErrMalformedOutput)
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single immutable entry of the conversation history.
// On the wire it is {"type": "user"|"ai", "content": "..."}.
type Message struct {
	Role    Role
	Content string
}

type wireMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// MarshalJSON writes the message in the frontend's {type, content} shape.
func (m Message) MarshalJSON() ([]byte, error) {
	t := "ai"
	if m.Role == RoleUser {
		t = "user"
	}
	return json.Marshal(wireMessage{Type: t, Content: m.Content})
}

// UnmarshalJSON accepts "user", "ai" and "assistant" types; "role" is read
// when "type" is absent.
func (m *Message) UnmarshalJSON(b []byte) error {
	var w struct {
		Type    string `json:"type"`
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	kind := w.Type
	if kind == "" {
		kind = w.Role
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "user":
		m.Role = RoleUser
	case "ai", "assistant", "":
		m.Role = RoleAssistant
	default:
		return fmt.Errorf("%w: unknown message type %q", ErrInvalidArgument, kind)
	}
	m.Content = w.Content
	return nil
}

// UserMessage is a convenience constructor.
func UserMessage(content string) Message { return Message{Role: RoleUser, Content: content} }

// AssistantMessage is a convenience constructor.
func AssistantMessage(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// TurnRequest is one self-contained conversational call. The caller owns the
// history and must resend it in full on every call.
type TurnRequest struct {
	Course      string
	UserMessage string
	History     []Message
	Phase       Phase
	UserProfile map[string]any
}

// TurnResponse is the result of one turn. Report is non-nil iff Complete.
type TurnResponse struct {
	Reply       string         `json:"response"`
	NextPhase   Phase          `json:"phase"`
	UserProfile map[string]any `json:"userProfile"`
	Complete    bool           `json:"assessmentComplete"`
	Report      *Report        `json:"assessment,omitempty"`
}

// AssessmentType tags which pipeline layer produced a report.
type AssessmentType string

const (
	AssessmentAIGenerated               AssessmentType = "ai_generated"
	AssessmentAISimplified              AssessmentType = "ai_simplified"
	AssessmentConversationAwareFallback AssessmentType = "conversation_aware_fallback"
)

// Valid reports whether t is one of the defined tags.
func (t AssessmentType) Valid() bool {
	switch t {
	case AssessmentAIGenerated, AssessmentAISimplified, AssessmentConversationAwareFallback:
		return true
	}
	return false
}

// Difficulty of a suggested project.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ParseDifficulty normalises model output; anything unknown becomes beginner.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyIntermediate:
		return DifficultyIntermediate
	case DifficultyAdvanced:
		return DifficultyAdvanced
	default:
		return DifficultyBeginner
	}
}

// Resource is a learning resource recommendation.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Provider    string `json:"provider"`
	Duration    string `json:"duration"`
}

// Project is a suggested portfolio project.
type Project struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Skills      []string   `json:"skills"`
	Difficulty  Difficulty `json:"difficulty"`
}

// SkillsAnalysis summarises the candidate's skill position.
type SkillsAnalysis struct {
	CurrentSkills    []string `json:"currentSkills"`
	MissingSkills    []string `json:"missingSkills"`
	StrengthAreas    []string `json:"strengthAreas"`
	ImprovementAreas []string `json:"improvementAreas"`
	RecommendedPath  []string `json:"recommendedPath"`
}

// PersonalizedPlan is the time-boxed development plan.
type PersonalizedPlan struct {
	ShortTerm  []string   `json:"shortTerm"`
	MediumTerm []string   `json:"mediumTerm"`
	LongTerm   []string   `json:"longTerm"`
	Resources  []Resource `json:"resources"`
	Projects   []Project  `json:"projects"`
}

// Report is the structured end-of-assessment employability output.
// Invariants: EmployabilityScore, Confidence and AIConfidence in [0,100];
// AssessmentType.Valid(); no nil slices.
type Report struct {
	ID                 string           `json:"reportId"`
	Course             string           `json:"course"`
	Conversation       []Message        `json:"conversation"`
	SkillsAnalysis     SkillsAnalysis   `json:"skillsAnalysis"`
	PersonalizedPlan   PersonalizedPlan `json:"personalizedPlan"`
	EmployabilityScore int              `json:"employabilityScore"`
	Confidence         int              `json:"confidence"`
	AIConfidence       int              `json:"aiConfidence"`
	AssessmentType     AssessmentType   `json:"assessmentType"`
}

// Answer values for the static assessment.
const (
	AnswerYes   = "yes"
	AnswerNo    = "no"
	AnswerMaybe = "maybe"
)

// Question is one yes/no/maybe item of a static question bank.
type Question struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Skill    string `json:"skill" yaml:"skill"`
}

// Answer is the user's reply to a question.
type Answer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

// QuestionSource describes where a question bank came from.
type QuestionSource string

const (
	SourcePredefined QuestionSource = "predefined"
	SourceAI         QuestionSource = "ai"
	SourceGeneric    QuestionSource = "generic"
)

// QuestionSet is the response of the static question lookup.
type QuestionSet struct {
	Questions []Question     `json:"questions"`
	Source    QuestionSource `json:"source"`
}

// AssessmentResult is the scored static assessment.
type AssessmentResult struct {
	Score           int        `json:"score"`
	MissingSkills   []string   `json:"missing_skills"`
	Recommendations []Resource `json:"recommendations"`
	Projects        []Project  `json:"projects"`
	Summary         string     `json:"summary"`
}

// LLMGateway (port)
// Complete sends one prompt to the chat-completion service and returns the raw
// reply. Implementations do not retry; any transport error, non-2xx status or
// empty reply is returned as an error wrapping one of the upstream sentinels.
//
//go:generate mockery --name=LLMGateway --with-expecter --filename=llm_gateway_mock.go
type LLMGateway interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// QuestionCache (port) stores AI-generated question banks keyed by course.
//
//go:generate mockery --name=QuestionCache --with-expecter --filename=question_cache_mock.go
type QuestionCache interface {
	Get(ctx context.Context, course string) ([]Question, bool, error)
	Set(ctx context.Context, course string, questions []Question) error
}
