package usecase

import (
	"strings"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// Message-count thresholds for leaving the first three phases.
const (
	ExplorationThreshold = 3
	DeepDiveThreshold    = 6
	AnalysisThreshold    = 9

	DefaultCompleteThreshold = 10
	DefaultHistoryWindow     = 5
)

// PhaseEngine decides phase progression and renders phase prompts.
type PhaseEngine struct {
	completeThreshold int
	historyWindow     int
}

// NewPhaseEngine builds an engine. Non-positive arguments select the defaults;
// a completion threshold below the analysis threshold is raised to it.
func NewPhaseEngine(completeThreshold, historyWindow int) *PhaseEngine {
	if completeThreshold <= 0 {
		completeThreshold = DefaultCompleteThreshold
	}
	if completeThreshold < AnalysisThreshold {
		completeThreshold = AnalysisThreshold
	}
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &PhaseEngine{completeThreshold: completeThreshold, historyWindow: historyWindow}
}

// Advance returns the phase after a turn, given the history length before
// that turn. It moves at most one step and never moves backwards.
func (e *PhaseEngine) Advance(phase domain.Phase, messageCount int) domain.Phase {
	switch phase {
	case domain.PhaseIntroduction:
		if messageCount >= ExplorationThreshold {
			return domain.PhaseExploration
		}
	case domain.PhaseExploration:
		if messageCount >= DeepDiveThreshold {
			return domain.PhaseDeepDive
		}
	case domain.PhaseDeepDive:
		if messageCount >= AnalysisThreshold {
			return domain.PhaseAnalysis
		}
	case domain.PhaseAnalysis:
		if messageCount >= e.completeThreshold {
			return domain.PhaseComplete
		}
	}
	return phase
}

// TriggersReport reports whether a turn moving from phase to next must
// produce the final report: on completion, or on the turn that enters analysis.
func TriggersReport(phase, next domain.Phase) bool {
	return next == domain.PhaseComplete ||
		(next == domain.PhaseAnalysis && phase != domain.PhaseAnalysis)
}

// Prompt renders the phase prompt. Only the most recent history entries
// within the window are included.
func (e *PhaseEngine) Prompt(phase domain.Phase, course, userMessage string, history []domain.Message) string {
	return renderPhasePrompt(phase, promptData{
		Course:      course,
		UserMessage: userMessage,
		History:     RenderHistory(lastN(history, e.historyWindow)),
	})
}

// RenderHistory formats messages as "User: ..." / "AI: ..." lines.
func RenderHistory(history []domain.Message) string {
	var b strings.Builder
	for _, m := range history {
		if m.Role == domain.RoleUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("AI: ")
		}
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	return b.String()
}

func lastN(history []domain.Message, n int) []domain.Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
