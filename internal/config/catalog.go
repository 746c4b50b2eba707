package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// QuestionsPerBank is the fixed size of every static question bank.
const QuestionsPerBank = 8

//go:embed catalog.yaml
var embeddedCatalog []byte

// TopicGuardKeywords optionally overrides the built-in topic guard keyword sets.
type TopicGuardKeywords struct {
	OffTopic []string `yaml:"off_topic"`
	Career   []string `yaml:"career"`
}

// Catalog is the static course catalog: supported courses, predefined
// question banks and static-mode fallbacks.
type Catalog struct {
	Courses          []string                     `yaml:"courses"`
	QuestionBanks    map[string][]domain.Question `yaml:"question_banks"`
	GenericQuestions []domain.Question            `yaml:"generic_questions"`
	Recommendations  []domain.Resource            `yaml:"recommendations"`
	Projects         []domain.Project             `yaml:"projects"`
	TopicGuard       TopicGuardKeywords           `yaml:"topic_guard"`

	banks map[string][]domain.Question
}

// LoadCatalog reads the catalog from path, or the embedded default when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	content := embeddedCatalog
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("op=config.LoadCatalog: failed to get absolute path: %w", err)
		}
		// #nosec G304 -- operator-supplied catalog path
		content, err = os.ReadFile(absPath)
		if err != nil {
			return nil, fmt.Errorf("op=config.LoadCatalog: failed to read catalog: %w", err)
		}
	}
	return ParseCatalog(content)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(content []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("op=config.ParseCatalog: failed to parse YAML: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("op=config.ParseCatalog: %w", err)
	}
	c.banks = make(map[string][]domain.Question, len(c.QuestionBanks))
	for course, qs := range c.QuestionBanks {
		c.banks[NormalizeCourse(course)] = qs
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Courses) == 0 {
		return fmt.Errorf("catalog has no courses")
	}
	for _, course := range c.Courses {
		if strings.TrimSpace(course) == "" {
			return fmt.Errorf("catalog has a blank course name")
		}
	}
	if err := validateBank("generic_questions", c.GenericQuestions); err != nil {
		return err
	}
	for course, qs := range c.QuestionBanks {
		if err := validateBank("question_banks."+course, qs); err != nil {
			return err
		}
	}
	if len(c.Recommendations) == 0 {
		return fmt.Errorf("catalog has no fallback recommendations")
	}
	if len(c.Projects) == 0 {
		return fmt.Errorf("catalog has no fallback projects")
	}
	for i := range c.Projects {
		c.Projects[i].Difficulty = domain.ParseDifficulty(string(c.Projects[i].Difficulty))
		if c.Projects[i].Skills == nil {
			c.Projects[i].Skills = []string{}
		}
	}
	return nil
}

func validateBank(name string, qs []domain.Question) error {
	if len(qs) != QuestionsPerBank {
		return fmt.Errorf("%s: want %d questions, got %d", name, QuestionsPerBank, len(qs))
	}
	seen := make(map[string]struct{}, len(qs))
	for i, q := range qs {
		if strings.TrimSpace(q.ID) == "" || strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Skill) == "" {
			return fmt.Errorf("%s[%d]: id, question and skill are required", name, i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%s[%d]: duplicate id %q", name, i, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// Bank returns a copy of the predefined question bank for course. Lookup is
// case-insensitive and ignores surrounding whitespace.
func (c *Catalog) Bank(course string) ([]domain.Question, bool) {
	qs, ok := c.banks[NormalizeCourse(course)]
	if !ok {
		return nil, false
	}
	return append([]domain.Question(nil), qs...), true
}

// Generic returns a copy of the generic question bank.
func (c *Catalog) Generic() []domain.Question {
	return append([]domain.Question(nil), c.GenericQuestions...)
}

// FallbackRecommendations returns a copy of the static learning resources.
func (c *Catalog) FallbackRecommendations() []domain.Resource {
	return append([]domain.Resource(nil), c.Recommendations...)
}

// FallbackProjects returns a copy of the static project suggestions.
func (c *Catalog) FallbackProjects() []domain.Project {
	out := make([]domain.Project, len(c.Projects))
	for i, p := range c.Projects {
		p.Skills = append([]string{}, p.Skills...)
		out[i] = p
	}
	return out
}

// NormalizeCourse is the key used for course lookups and caches.
func NormalizeCourse(course string) string {
	return strings.ToLower(strings.Join(strings.Fields(course), " "))
}
