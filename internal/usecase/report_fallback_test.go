package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

func TestHeuristicScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user string
		want int
	}{
		{"base", "hello there", 65},
		{"experience", "I did an Internship last year", 75},
		{"learning", "I learned SQL", 70},
		{"difficulty", "it was hard", 60},
		{"experience and learning", "I worked on a project and learned a lot", 80},
		{"all three", "I worked hard and studied", 75},
		{"learning and difficulty", "I know it is difficult", 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := []domain.Message{domain.AssistantMessage("experience? skill? hard?"), domain.UserMessage(tt.user)}
			assert.Equal(t, tt.want, HeuristicScore(h))
		})
	}
}

func TestHeuristicScore_IgnoresAssistantText(t *testing.T) {
	t.Parallel()
	h := []domain.Message{domain.AssistantMessage("Tell me about your internship experience and skills")}
	assert.Equal(t, 65, HeuristicScore(h))
}

func TestHeuristicScore_AlwaysWithinBounds(t *testing.T) {
	t.Parallel()
	inputs := []string{"", "experience skill", "difficult challenge struggle hard", "project learned hard", "x"}
	for _, in := range inputs {
		s := HeuristicScore([]domain.Message{domain.UserMessage(in)})
		assert.GreaterOrEqual(t, s, 40)
		assert.LessOrEqual(t, s, 85)
	}
}

func TestHeuristicReport_IsDeterministic(t *testing.T) {
	t.Parallel()

	history := sampleHistory()
	a, err := json.Marshal(HeuristicReport("Computer Science", history))
	require.NoError(t, err)
	b, err := json.Marshal(HeuristicReport("Computer Science", history))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	other, err := json.Marshal(HeuristicReport("Computer Science", history[:2]))
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestHeuristicReport_Shape(t *testing.T) {
	t.Parallel()

	r := HeuristicReport("Agriculture", sampleHistory())
	assert.Equal(t, domain.AssessmentConversationAwareFallback, r.AssessmentType)
	assert.Equal(t, 60, r.AIConfidence)
	assert.Equal(t, 70, r.Confidence)
	assert.Equal(t, "Agriculture", r.Course)
	assert.Equal(t, sampleHistory(), r.Conversation)
	assert.Contains(t, r.SkillsAnalysis.MissingSkills, "Practical Agriculture Experience")
}

func TestTemplateFor_CourseFamilies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		course string
		want   reportTemplate
	}{
		{"Computer Science", techTemplate()},
		{"Software Engineering", techTemplate()},
		{"Mechanical Engineering", engineeringTemplate()},
		{"Civil Engineering", engineeringTemplate()},
		{"Business Administration", businessTemplate()},
		{"Hospitality Management", businessTemplate()},
		{"Psychology", genericTemplate("Psychology")},
	}
	for _, tt := range tests {
		t.Run(tt.course, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, templateFor(tt.course))
		})
	}
}

func TestTemplateFor_ReturnsFreshSlices(t *testing.T) {
	t.Parallel()
	a := templateFor("Computer Science")
	a.skills.CurrentSkills[0] = "mutated"
	assert.NotEqual(t, "mutated", templateFor("Computer Science").skills.CurrentSkills[0])
}

func TestReportID_StableAndInputSensitive(t *testing.T) {
	t.Parallel()
	h := sampleHistory()
	assert.Equal(t, reportID("Law", h), reportID("Law", h))
	assert.NotEqual(t, reportID("Law", h), reportID("Medicine", h))
	assert.Len(t, reportID("Law", nil), 36)
}
