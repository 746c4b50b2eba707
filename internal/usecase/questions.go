package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	"github.com/fairyhunter13/skillbridge-assessor/pkg/textx"
)

// QuestionsPerSet is the size of every static question set.
const QuestionsPerSet = 8

// Catalog is the static course data the static mode reads from.
type Catalog interface {
	Bank(course string) ([]domain.Question, bool)
	Generic() []domain.Question
	FallbackRecommendations() []domain.Resource
	FallbackProjects() []domain.Project
}

// QuestionService resolves the yes/no question set for a course.
type QuestionService struct {
	Catalog Catalog
	LLM     domain.LLMGateway
	Cache   domain.QuestionCache
	cleaner *ResponseCleaner
}

// NewQuestionService constructs a QuestionService. cache may be nil.
func NewQuestionService(c Catalog, llm domain.LLMGateway, cache domain.QuestionCache) QuestionService {
	return QuestionService{Catalog: c, LLM: llm, Cache: cache, cleaner: NewResponseCleaner()}
}

// GetQuestions returns the predefined bank, else a cached or freshly
// generated AI bank, else the generic bank.
func (s QuestionService) GetQuestions(ctx context.Context, course string) (domain.QuestionSet, error) {
	course = textx.SanitizeLine(course)
	if course == "" {
		return domain.QuestionSet{}, fmt.Errorf("%w: course is required", domain.ErrInvalidArgument)
	}
	ctx, span := otel.Tracer("usecase.questions").Start(ctx, "QuestionService.GetQuestions")
	defer span.End()
	lg := observability.LoggerFromContext(ctx).With(slog.String("course", course))

	set := s.resolve(ctx, lg, course)
	span.SetAttributes(attribute.String("questions.source", string(set.Source)))
	observability.ObserveQuestionSet(string(set.Source))
	return set, nil
}

func (s QuestionService) resolve(ctx context.Context, lg *slog.Logger, course string) domain.QuestionSet {
	if qs, ok := s.Catalog.Bank(course); ok {
		return domain.QuestionSet{Questions: qs, Source: domain.SourcePredefined}
	}

	if s.Cache != nil {
		qs, ok, err := s.Cache.Get(ctx, course)
		switch {
		case err != nil:
			observability.ObserveQuestionCache("error")
			lg.Warn("question cache read failed", slog.Any("error", err))
		case ok && len(qs) == QuestionsPerSet:
			observability.ObserveQuestionCache("hit")
			return domain.QuestionSet{Questions: qs, Source: domain.SourceAI}
		default:
			observability.ObserveQuestionCache("miss")
		}
	}

	qs, err := s.generate(ctx, course)
	if err != nil {
		lg.Warn("question generation failed, using generic bank", slog.Any("error", err))
		return domain.QuestionSet{Questions: s.Catalog.Generic(), Source: domain.SourceGeneric}
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, course, qs); err != nil {
			lg.Warn("question cache write failed", slog.Any("error", err))
		}
	}
	return domain.QuestionSet{Questions: qs, Source: domain.SourceAI}
}

// generate asks the model for exactly eight questions and assigns ids 1..8.
func (s QuestionService) generate(ctx context.Context, course string) ([]domain.Question, error) {
	raw, err := s.LLM.Complete(ctx, render(questionsPrompt, promptData{Course: course}))
	if err != nil {
		return nil, fmt.Errorf("op=questions.generate: %w", err)
	}
	res := s.cleaner.Clean(raw)
	if !res.OK() {
		return nil, fmt.Errorf("op=questions.generate: %w", res.Err())
	}
	items := gjson.Get(res.JSON, "questions")
	if !items.IsArray() {
		return nil, fmt.Errorf("op=questions.generate: %w: questions must be an array", domain.ErrMalformedOutput)
	}

	out := make([]domain.Question, 0, QuestionsPerSet)
	for _, it := range items.Array() {
		q := strings.TrimSpace(it.Get("question").String())
		skill := strings.TrimSpace(it.Get("skill").String())
		if !it.IsObject() || q == "" || skill == "" {
			return nil, fmt.Errorf("op=questions.generate: %w: blank question or skill", domain.ErrMalformedOutput)
		}
		out = append(out, domain.Question{ID: strconv.Itoa(len(out) + 1), Question: q, Skill: skill})
	}
	if len(out) != QuestionsPerSet {
		return nil, fmt.Errorf("op=questions.generate: %w: got %d questions, want %d", domain.ErrMalformedOutput, len(out), QuestionsPerSet)
	}
	return out, nil
}
