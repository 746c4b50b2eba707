package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	domainmocks "github.com/fairyhunter13/skillbridge-assessor/internal/domain/mocks"
)

func eightQuestions() []domain.Question {
	qs := make([]domain.Question, 8)
	for i := range qs {
		qs[i] = domain.Question{ID: fmt.Sprint(i + 1), Question: "q?", Skill: fmt.Sprintf("Skill %d", i+1)}
	}
	return qs
}

func TestScoreAnswers(t *testing.T) {
	t.Parallel()

	qs := eightQuestions()
	tests := []struct {
		name        string
		answers     map[string]string
		wantScore   int
		wantMissing []string
	}{
		{
			name:        "five yes one maybe two no",
			answers:     map[string]string{"1": "yes", "2": "yes", "3": "yes", "4": "yes", "5": "yes", "6": "maybe", "7": "no", "8": "no"},
			wantScore:   69,
			wantMissing: []string{"Skill 6", "Skill 7", "Skill 8"},
		},
		{
			name:        "all yes",
			answers:     map[string]string{"1": "yes", "2": "yes", "3": "yes", "4": "yes", "5": "yes", "6": "yes", "7": "yes", "8": "yes"},
			wantScore:   100,
			wantMissing: []string{},
		},
		{
			name:        "unanswered counts as no",
			answers:     map[string]string{"1": "yes", "2": "yes"},
			wantScore:   25,
			wantMissing: []string{"Skill 3", "Skill 4", "Skill 5", "Skill 6", "Skill 7", "Skill 8"},
		},
		{
			name:        "all maybe",
			answers:     map[string]string{"1": "maybe", "2": "maybe", "3": "maybe", "4": "maybe", "5": "maybe", "6": "maybe", "7": "maybe", "8": "maybe"},
			wantScore:   50,
			wantMissing: []string{"Skill 1", "Skill 2", "Skill 3", "Skill 4", "Skill 5", "Skill 6", "Skill 7", "Skill 8"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			score, missing := ScoreAnswers(qs, tt.answers)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}

func TestScoreAnswers_DeduplicatesSkills(t *testing.T) {
	t.Parallel()

	qs := []domain.Question{
		{ID: "a", Skill: "Git"},
		{ID: "b", Skill: "SQL"},
		{ID: "c", Skill: "Git"},
	}
	score, missing := ScoreAnswers(qs, map[string]string{"b": "yes"})
	assert.Equal(t, 33, score)
	assert.Equal(t, []string{"Git"}, missing)
}

func TestSummary(t *testing.T) {
	t.Parallel()
	assert.Equal(t, SummaryExcellent, Summary(80))
	assert.Equal(t, SummaryGood, Summary(79))
	assert.Equal(t, SummaryGood, Summary(60))
	assert.Equal(t, SummaryLearning, Summary(59))
}

func TestScore_Validation(t *testing.T) {
	t.Parallel()

	svc := NewScoringService(testCatalog(t), domainmocks.NewLLMGateway(t))
	ctx := context.Background()

	_, err := svc.Score(ctx, "", eightQuestions(), nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Score(ctx, "Law", nil, nil)
	require.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Score(ctx, "Law", eightQuestions(), []domain.Answer{{QuestionID: "1", Answer: "definitely"}})
	require.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Contains(t, err.Error(), `"1"`)
}

func TestScore_UsesModelRecommendations(t *testing.T) {
	t.Parallel()

	llm := domainmocks.NewLLMGateway(t)
	llm.EXPECT().Complete(mock.Anything, mock.Anything).Return(`{
		"recommendations": [{"title": "SQLBolt", "url": "https://sqlbolt.com"}],
		"projects": [{"title": "Inventory DB", "skills": ["SQL"], "difficulty": "beginner"}]
	}`, nil).Once()

	answers := []domain.Answer{{QuestionID: "1", Answer: " YES "}, {QuestionID: "2", Answer: "no"}}
	res, err := NewScoringService(testCatalog(t), llm).Score(context.Background(), "Computer Science", eightQuestions(), answers)
	require.NoError(t, err)

	assert.Equal(t, 13, res.Score)
	assert.Len(t, res.MissingSkills, 7)
	assert.Equal(t, []domain.Resource{{Title: "SQLBolt", URL: "https://sqlbolt.com"}}, res.Recommendations)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "Inventory DB", res.Projects[0].Title)
	assert.Equal(t, SummaryLearning, res.Summary)
}

func TestScore_FallsBackToCatalogSuggestions(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(t)
	for name, reply := range map[string]struct {
		raw string
		err error
	}{
		"gateway error": {"", domain.ErrUpstreamTimeout},
		"prose":         {"Try some courses.", nil},
		"empty lists":   {`{"recommendations": [], "projects": []}`, nil},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			llm := domainmocks.NewLLMGateway(t)
			llm.EXPECT().Complete(mock.Anything, mock.Anything).Return(reply.raw, reply.err).Once()

			answers := []domain.Answer{
				{QuestionID: "1", Answer: "yes"}, {QuestionID: "2", Answer: "yes"}, {QuestionID: "3", Answer: "yes"},
				{QuestionID: "4", Answer: "yes"}, {QuestionID: "5", Answer: "yes"}, {QuestionID: "6", Answer: "maybe"},
				{QuestionID: "7", Answer: "no"}, {QuestionID: "8", Answer: "no"},
			}
			res, err := NewScoringService(catalog, llm).Score(context.Background(), "Law", eightQuestions(), answers)
			require.NoError(t, err)

			assert.Equal(t, 69, res.Score)
			assert.Equal(t, SummaryGood, res.Summary)
			assert.Equal(t, catalog.FallbackRecommendations(), res.Recommendations)
			assert.Equal(t, catalog.FallbackProjects(), res.Projects)
		})
	}
}
