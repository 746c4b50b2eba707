package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/fairyhunter13/skillbridge-assessor/internal/config"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// TurnHandler runs one conversational turn.
type TurnHandler interface {
	HandleTurn(ctx context.Context, req domain.TurnRequest) (domain.TurnResponse, error)
}

// QuestionProvider resolves the static question set of a course.
type QuestionProvider interface {
	GetQuestions(ctx context.Context, course string) (domain.QuestionSet, error)
}

// AssessmentScorer scores a static assessment.
type AssessmentScorer interface {
	Score(ctx context.Context, course string, questions []domain.Question, answers []domain.Answer) (domain.AssessmentResult, error)
}

// Server aggregates handlers dependencies.
type Server struct {
	Cfg        config.Config
	Courses    []string
	Turns      TurnHandler
	Questions  QuestionProvider
	Scoring    AssessmentScorer
	RedisCheck func(ctx context.Context) error
	LLMCheck   func(ctx context.Context) error
	now        func() time.Time
}

// NewServer constructs an HTTP server with all handlers and checks wired.
// Nil checks are skipped by /readyz.
func NewServer(cfg config.Config, courses []string, turns TurnHandler, questions QuestionProvider, scoring AssessmentScorer, redisCheck, llmCheck func(context.Context) error) *Server {
	return &Server{
		Cfg:        cfg,
		Courses:    append([]string(nil), courses...),
		Turns:      turns,
		Questions:  questions,
		Scoring:    scoring,
		RedisCheck: redisCheck,
		LLMCheck:   llmCheck,
		now:        time.Now,
	}
}

type chatAssessRequest struct {
	Course              string           `json:"course" validate:"notblank"`
	UserMessage         string           `json:"userMessage" validate:"notblank"`
	ConversationHistory []domain.Message `json:"conversationHistory"`
	AssessmentPhase     string           `json:"assessmentPhase"`
	UserProfile         map[string]any   `json:"userProfile"`
}

type questionsRequest struct {
	Course string `json:"course" validate:"notblank"`
}

type assessRequest struct {
	Course    string            `json:"course" validate:"notblank"`
	Questions []domain.Question `json:"questions" validate:"required,min=1"`
	Answers   []domain.Answer   `json:"answers" validate:"required"`
}

// requireJSON rejects clients that cannot take a JSON response.
func requireJSON(w http.ResponseWriter, r *http.Request) bool {
	if acceptsJSON(r) {
		return true
	}
	writeJSON(w, http.StatusNotAcceptable, errorBody{
		Error:   "not acceptable",
		Code:    "NOT_ACCEPTABLE",
		Details: map[string]string{"accept": r.Header.Get("Accept")},
	})
	return false
}

// HealthHandler reports liveness with a timestamp.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": s.clock().UTC().Format(time.RFC3339),
		})
	}
}

// CoursesHandler lists the supported courses.
func (s *Server) CoursesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		courses := s.Courses
		if courses == nil {
			courses = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"courses": courses})
	}
}

// ChatAssessHandler runs one conversational turn.
func (s *Server) ChatAssessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		var req chatAssessRequest
		if details, err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, detailsOrNil(details))
			return
		}
		phase, err := domain.ParsePhase(req.AssessmentPhase)
		if err != nil {
			writeError(w, r, err, map[string]string{"assessmentPhase": "oneof"})
			return
		}
		resp, err := s.Turns.HandleTurn(r.Context(), domain.TurnRequest{
			Course:      req.Course,
			UserMessage: req.UserMessage,
			History:     req.ConversationHistory,
			Phase:       phase,
			UserProfile: req.UserProfile,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// QuestionsHandler returns the static question bank for a course.
func (s *Server) QuestionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		var req questionsRequest
		if details, err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, detailsOrNil(details))
			return
		}
		set, err := s.Questions.GetQuestions(r.Context(), req.Course)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}

// AssessHandler scores a static yes/no/maybe assessment.
func (s *Server) AssessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireJSON(w, r) {
			return
		}
		var req assessRequest
		if details, err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, err, detailsOrNil(details))
			return
		}
		res, err := s.Scoring.Score(r.Context(), req.Course, req.Questions, req.Answers)
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// HealthzHandler is the bare liveness probe.
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }
}

// ReadyzHandler probes Redis and the LLM gateway configuration.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		probes := []struct {
			name string
			fn   func(context.Context) error
		}{
			{"redis", s.RedisCheck},
			{"llm", s.LLMCheck},
		}
		checks := make([]check, 0, len(probes))
		st := http.StatusOK
		for _, p := range probes {
			if p.fn == nil {
				continue
			}
			if err := p.fn(ctx); err != nil {
				checks = append(checks, check{Name: p.name, OK: false, Details: err.Error()})
				st = http.StatusServiceUnavailable
				continue
			}
			checks = append(checks, check{Name: p.name, OK: true})
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}

func (s *Server) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func detailsOrNil(details map[string]string) any {
	if len(details) == 0 {
		return nil
	}
	return details
}
