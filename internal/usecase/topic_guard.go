package usecase

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/skillbridge-assessor/pkg/textx"
)

// DefaultOffTopicKeywords mark a message as potentially unrelated to the assessment.
var DefaultOffTopicKeywords = []string{
	"weather", "politics", "sports", "entertainment", "food", "travel",
	"personal life", "relationships", "news", "current events", "jokes",
	"stories", "music", "movies", "games", "general knowledge",
}

// DefaultCareerKeywords mark a message as career related. The lower-cased
// course name is always added at classification time.
var DefaultCareerKeywords = []string{
	"skill", "job", "career", "work", "employment", "experience", "project",
}

// Classification is the Topic Guard verdict. Redirect is set only when the
// message is off-topic.
type Classification struct {
	OnTopic  bool
	Redirect string
}

// TopicGuard is a keyword classifier that keeps the conversation on the
// selected course. It never calls the LLM.
type TopicGuard struct {
	offTopic []string
	career   []string
}

// NewTopicGuard builds a guard over the given keyword sets. A nil set selects
// the default; an empty non-nil set is kept as is and never matches.
func NewTopicGuard(offTopic, career []string) *TopicGuard {
	if offTopic == nil {
		offTopic = DefaultOffTopicKeywords
	}
	if career == nil {
		career = DefaultCareerKeywords
	}
	return &TopicGuard{offTopic: lowerAll(offTopic), career: lowerAll(career)}
}

// Classify decides whether message is on-topic for course. A message is
// off-topic only when it hits an off-topic keyword and no career keyword.
func (g *TopicGuard) Classify(message, course string) Classification {
	text := strings.ToLower(message)
	if !textx.ContainsAny(text, g.offTopic) {
		return Classification{OnTopic: true}
	}
	career := append(append(make([]string, 0, len(g.career)+1), g.career...), strings.ToLower(strings.TrimSpace(course)))
	if textx.ContainsAny(text, career) {
		return Classification{OnTopic: true}
	}
	return Classification{OnTopic: false, Redirect: RedirectReply(course)}
}

// RedirectReply is the canned answer for off-topic messages.
func RedirectReply(course string) string {
	return fmt.Sprintf("I'm SkillBridge AI, specifically designed to assess your %[1]s career readiness. "+
		"Let's focus on your skills, experience, and career goals in %[1]s.\n\n"+
		"Could you tell me about your experience with %[1]s coursework or any projects you've worked on?", course)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
