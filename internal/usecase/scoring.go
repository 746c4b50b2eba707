package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/skillbridge-assessor/internal/adapter/observability"
	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	"github.com/fairyhunter13/skillbridge-assessor/pkg/textx"
)

// Summary lines by score bucket.
const (
	SummaryExcellent = "Excellent! You're well-prepared for the job market."
	SummaryGood      = "Good foundation! A few improvements will make you more competitive."
	SummaryLearning  = "Keep learning! Focus on building the missing skills to boost your employability."
)

const (
	maxRecommendations = 5
	maxProjects        = 3
)

// ScoringService scores a completed static assessment.
type ScoringService struct {
	Catalog Catalog
	LLM     domain.LLMGateway
	cleaner *ResponseCleaner
}

// NewScoringService constructs a ScoringService with its dependencies.
func NewScoringService(c Catalog, llm domain.LLMGateway) ScoringService {
	return ScoringService{Catalog: c, LLM: llm, cleaner: NewResponseCleaner()}
}

// Score computes the readiness score and missing skills, then asks the model
// for resources and projects, falling back to the static catalog ones.
func (s ScoringService) Score(ctx context.Context, course string, questions []domain.Question, answers []domain.Answer) (domain.AssessmentResult, error) {
	course = textx.SanitizeLine(course)
	if course == "" {
		return domain.AssessmentResult{}, fmt.Errorf("%w: course is required", domain.ErrInvalidArgument)
	}
	if len(questions) == 0 {
		return domain.AssessmentResult{}, fmt.Errorf("%w: questions are required", domain.ErrInvalidArgument)
	}
	byID, err := indexAnswers(answers)
	if err != nil {
		return domain.AssessmentResult{}, err
	}

	ctx, span := otel.Tracer("usecase.scoring").Start(ctx, "ScoringService.Score")
	defer span.End()

	score, missing := ScoreAnswers(questions, byID)
	recs, projects := s.recommend(ctx, course, missing)

	span.SetAttributes(attribute.Int("assessment.score", score), attribute.Int("assessment.missing_skills", len(missing)))
	observability.ObserveStaticScore(score)
	return domain.AssessmentResult{
		Score:           score,
		MissingSkills:   missing,
		Recommendations: recs,
		Projects:        projects,
		Summary:         Summary(score),
	}, nil
}

// indexAnswers maps question id to a normalised answer value.
func indexAnswers(answers []domain.Answer) (map[string]string, error) {
	out := make(map[string]string, len(answers))
	for _, a := range answers {
		v := strings.ToLower(strings.TrimSpace(a.Answer))
		switch v {
		case domain.AnswerYes, domain.AnswerNo, domain.AnswerMaybe:
		default:
			return nil, fmt.Errorf("%w: answer for question %q must be yes, no or maybe", domain.ErrInvalidArgument, a.QuestionID)
		}
		out[a.QuestionID] = v
	}
	return out, nil
}

// ScoreAnswers returns round(100*(yes+0.5*maybe)/len(questions)) and the
// de-duplicated skills of every question not answered "yes". Unanswered
// questions count as "no".
func ScoreAnswers(questions []domain.Question, answers map[string]string) (int, []string) {
	var points float64
	missing := []string{}
	seen := map[string]struct{}{}
	for _, q := range questions {
		switch answers[q.ID] {
		case domain.AnswerYes:
			points++
			continue
		case domain.AnswerMaybe:
			points += 0.5
		}
		if _, dup := seen[q.Skill]; !dup && q.Skill != "" {
			seen[q.Skill] = struct{}{}
			missing = append(missing, q.Skill)
		}
	}
	if len(questions) == 0 {
		return 0, missing
	}
	return int(math.Round(100 * points / float64(len(questions)))), missing
}

// Summary maps a score to its encouragement line.
func Summary(score int) string {
	switch {
	case score >= 80:
		return SummaryExcellent
	case score >= 60:
		return SummaryGood
	default:
		return SummaryLearning
	}
}

func (s ScoringService) recommend(ctx context.Context, course string, missing []string) ([]domain.Resource, []domain.Project) {
	lg := observability.LoggerFromContext(ctx).With(slog.String("course", course))
	recs, projects := []domain.Resource{}, []domain.Project{}

	skills := strings.Join(missing, ", ")
	if skills == "" {
		skills = "none; suggest ways to deepen existing strengths"
	}
	raw, err := s.LLM.Complete(ctx, render(recommendationsPrompt, promptData{Course: course, Skills: skills}))
	if err == nil {
		res := s.cleaner.Clean(raw)
		if res.OK() {
			doc := gjson.Parse(res.JSON)
			if v, ok := readResources(doc.Get("recommendations")); ok {
				recs = v
			}
			if v, ok := readProjects(doc.Get("projects")); ok {
				projects = v
			}
		} else {
			err = res.Err()
		}
	}
	if err != nil {
		lg.Warn("recommendation generation failed, using static suggestions", slog.Any("error", err))
	}

	if len(recs) == 0 {
		recs = s.Catalog.FallbackRecommendations()
	}
	if len(projects) == 0 {
		projects = s.Catalog.FallbackProjects()
	}
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	if len(projects) > maxProjects {
		projects = projects[:maxProjects]
	}
	return recs, projects
}
