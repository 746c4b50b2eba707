package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
	"github.com/fairyhunter13/skillbridge-assessor/pkg/textx"
)

// Keyword sets for the heuristic employability score.
var (
	ExperienceKeywords = []string{"experience", "worked", "internship", "project"}
	LearningKeywords   = []string{"skill", "learned", "studied", "know"}
	DifficultyKeywords = []string{"difficult", "challenge", "struggle", "hard"}
)

const (
	heuristicBaseScore  = 65
	heuristicMinScore   = 40
	heuristicMaxScore   = 85
	heuristicConfidence = 70

	fallbackAIConfidence   = 60
	simplifiedAIConfidence = 75
	fullAIConfidence       = 85
)

// reportNamespace seeds name-based report ids.
var reportNamespace = uuid.MustParse("6f1d3c1e-8b4a-4f7e-9a52-3e0c2b7d9a10")

// HeuristicScore scores the user's own words: 65, +10 for experience
// keywords, +5 for learning keywords, -5 for difficulty keywords, clamped to [40,85].
func HeuristicScore(history []domain.Message) int {
	text := userText(history)
	score := heuristicBaseScore
	if textx.ContainsAny(text, ExperienceKeywords) {
		score += 10
	}
	if textx.ContainsAny(text, LearningKeywords) {
		score += 5
	}
	if textx.ContainsAny(text, DifficultyKeywords) {
		score -= 5
	}
	return clamp(score, heuristicMinScore, heuristicMaxScore)
}

// HeuristicReport is the last pipeline layer. It is pure: identical input
// gives an identical report.
func HeuristicReport(course string, history []domain.Message) domain.Report {
	tpl := templateFor(course)
	return domain.Report{
		ID:                 reportID(course, history),
		Course:             course,
		Conversation:       conversationCopy(history),
		SkillsAnalysis:     tpl.skills,
		PersonalizedPlan:   tpl.plan,
		EmployabilityScore: HeuristicScore(history),
		Confidence:         heuristicConfidence,
		AIConfidence:       fallbackAIConfidence,
		AssessmentType:     domain.AssessmentConversationAwareFallback,
	}
}

// userText lower-cases and joins every user-authored message.
func userText(history []domain.Message) string {
	return strings.ToLower(strings.Join(userMessages(history), "\n"))
}

func userMessages(history []domain.Message) []string {
	out := make([]string, 0, len(history))
	for _, m := range history {
		if m.Role == domain.RoleUser {
			out = append(out, m.Content)
		}
	}
	return out
}

func reportID(course string, history []domain.Message) string {
	var b strings.Builder
	b.WriteString(course)
	b.WriteByte(0)
	b.WriteString(RenderHistory(history))
	return uuid.NewSHA1(reportNamespace, []byte(b.String())).String()
}

func conversationCopy(history []domain.Message) []domain.Message {
	return append(make([]domain.Message, 0, len(history)), history...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type reportTemplate struct {
	skills domain.SkillsAnalysis
	plan   domain.PersonalizedPlan
}

// templateFor picks a template by coarse course family. Every call builds
// fresh slices.
func templateFor(course string) reportTemplate {
	c := strings.ToLower(course)
	switch {
	case strings.Contains(c, "computer") || strings.Contains(c, "software"):
		return techTemplate()
	case strings.Contains(c, "engineering"):
		return engineeringTemplate()
	case strings.Contains(c, "business") || strings.Contains(c, "management"):
		return businessTemplate()
	default:
		return genericTemplate(course)
	}
}

func techTemplate() reportTemplate {
	return reportTemplate{
		skills: domain.SkillsAnalysis{
			CurrentSkills:    []string{"Programming Fundamentals", "Problem Solving", "Computer Science Theory"},
			MissingSkills:    []string{"Version Control (Git)", "Cloud Platforms", "Automated Testing", "Production Portfolio"},
			StrengthAreas:    []string{"Analytical Thinking", "Technical Foundation", "Logical Reasoning"},
			ImprovementAreas: []string{"Hands-on Project Experience", "Industry Tooling", "Collaborative Development"},
			RecommendedPath: []string{
				"Master Git and collaborative workflows",
				"Build and deploy two full-stack projects",
				"Learn a cloud platform's core services",
				"Contribute to an open-source project",
			},
		},
		plan: domain.PersonalizedPlan{
			ShortTerm:  []string{"Publish existing coursework on GitHub", "Complete a web development course", "Practise algorithm problems weekly"},
			MediumTerm: []string{"Ship a deployed portfolio project", "Earn an entry-level cloud certification", "Join a local developer community"},
			LongTerm:   []string{"Secure a junior developer role or internship", "Specialise in backend, frontend or data", "Mentor newer students"},
			Resources: []domain.Resource{
				{Title: "freeCodeCamp", Description: "Free full-stack curriculum with certifications", URL: "https://www.freecodecamp.org", Provider: "freeCodeCamp", Duration: "3-6 months"},
				{Title: "The Odin Project", Description: "Project-based web development path", URL: "https://www.theodinproject.com", Provider: "The Odin Project", Duration: "4-8 months"},
			},
			Projects: []domain.Project{
				{Title: "Student Portal API", Description: "Build a REST API with authentication and a database", Skills: []string{"API Development", "Databases", "Security"}, Difficulty: domain.DifficultyIntermediate},
				{Title: "Personal Portfolio Website", Description: "Showcase your projects with a deployed site", Skills: []string{"HTML/CSS", "JavaScript", "Deployment"}, Difficulty: domain.DifficultyBeginner},
			},
		},
	}
}

func engineeringTemplate() reportTemplate {
	return reportTemplate{
		skills: domain.SkillsAnalysis{
			CurrentSkills:    []string{"Engineering Mathematics", "Technical Analysis", "Engineering Fundamentals"},
			MissingSkills:    []string{"CAD Proficiency", "Site or Plant Experience", "Professional Certification", "Project Documentation"},
			StrengthAreas:    []string{"Quantitative Reasoning", "Systematic Problem Solving"},
			ImprovementAreas: []string{"Practical Field Experience", "Industry Software", "Safety Standards"},
			RecommendedPath: []string{
				"Become fluent in an industry CAD tool",
				"Seek a supervised industrial placement",
				"Document a design project end to end",
				"Prepare for COREN registration",
			},
		},
		plan: domain.PersonalizedPlan{
			ShortTerm:  []string{"Complete a CAD fundamentals course", "Review health and safety regulations", "Update your CV with lab and design work"},
			MediumTerm: []string{"Finish a documented design project", "Complete an industrial attachment", "Join the Nigerian Society of Engineers as a graduate member"},
			LongTerm:   []string{"Obtain professional registration", "Secure a graduate engineer role", "Specialise in a growth sector such as energy or manufacturing"},
			Resources: []domain.Resource{
				{Title: "MIT OpenCourseWare Engineering", Description: "Free university engineering lectures and problem sets", URL: "https://ocw.mit.edu", Provider: "MIT", Duration: "Self-paced"},
				{Title: "Autodesk Design Academy", Description: "Free CAD and simulation training", URL: "https://www.autodesk.com/education", Provider: "Autodesk", Duration: "1-3 months"},
			},
			Projects: []domain.Project{
				{Title: "Component Redesign Study", Description: "Model and analyse an everyday mechanical or electrical component", Skills: []string{"CAD Design", "Technical Analysis", "Documentation"}, Difficulty: domain.DifficultyIntermediate},
				{Title: "Maintenance Checklist", Description: "Write a maintenance and safety checklist for a local facility", Skills: []string{"Safety & Compliance", "Technical Writing"}, Difficulty: domain.DifficultyBeginner},
			},
		},
	}
}

func businessTemplate() reportTemplate {
	return reportTemplate{
		skills: domain.SkillsAnalysis{
			CurrentSkills:    []string{"Business Fundamentals", "Communication", "Teamwork"},
			MissingSkills:    []string{"Data Analysis", "Financial Modelling", "Digital Marketing", "Industry Experience"},
			StrengthAreas:    []string{"Interpersonal Skills", "Organisational Awareness"},
			ImprovementAreas: []string{"Spreadsheet and Analytics Tools", "Practical Business Exposure", "Presentation Skills"},
			RecommendedPath: []string{
				"Become confident with Excel and basic analytics",
				"Analyse a real Nigerian business case",
				"Complete a business-focused internship",
				"Build a professional network on LinkedIn",
			},
		},
		plan: domain.PersonalizedPlan{
			ShortTerm:  []string{"Complete an Excel for business course", "Write a case study of a local company", "Polish your LinkedIn profile"},
			MediumTerm: []string{"Obtain a recognised business certificate", "Volunteer on a small business project", "Attend industry networking events"},
			LongTerm:   []string{"Secure a graduate trainee position", "Grow into a management track", "Consider a professional qualification"},
			Resources: []domain.Resource{
				{Title: "Google Digital Skills for Africa", Description: "Free digital marketing and business training", URL: "https://learndigital.withgoogle.com/digitalskills", Provider: "Google", Duration: "1-2 months"},
				{Title: "Coursera Business Foundations", Description: "Business fundamentals from top universities", URL: "https://www.coursera.org", Provider: "Coursera", Duration: "3-6 months"},
			},
			Projects: []domain.Project{
				{Title: "Small Business Growth Plan", Description: "Draft a growth and marketing plan for a local business", Skills: []string{"Strategy", "Marketing", "Financial Planning"}, Difficulty: domain.DifficultyIntermediate},
				{Title: "Sales Dashboard", Description: "Build a spreadsheet dashboard from sample sales data", Skills: []string{"Excel", "Data Analysis"}, Difficulty: domain.DifficultyBeginner},
			},
		},
	}
}

func genericTemplate(course string) reportTemplate {
	return reportTemplate{
		skills: domain.SkillsAnalysis{
			CurrentSkills:    []string{fmt.Sprintf("%s Academic Knowledge", course), "Communication", "Problem Solving"},
			MissingSkills:    []string{fmt.Sprintf("Practical %s Experience", course), "Industry Tools", "Professional Portfolio"},
			StrengthAreas:    []string{fmt.Sprintf("%s Theoretical Foundation", course), "Willingness to Learn"},
			ImprovementAreas: []string{"Hands-on Experience", fmt.Sprintf("%s Industry Tools", course), "Professional Networking"},
			RecommendedPath: []string{
				fmt.Sprintf("Build practical projects in %s", course),
				fmt.Sprintf("Learn the tools %s employers use", course),
				"Develop a professional portfolio",
				fmt.Sprintf("Earn a recognised %s certification", course),
			},
		},
		plan: domain.PersonalizedPlan{
			ShortTerm:  []string{fmt.Sprintf("Complete an online course in core %s skills", course), "Start a portfolio project", "Join professional communities online"},
			MediumTerm: []string{fmt.Sprintf("Complete two significant %s projects", course), "Obtain a relevant certification", "Network with practitioners in your field"},
			LongTerm:   []string{"Build a comprehensive portfolio", fmt.Sprintf("Apply for entry-level %s positions", course), "Find a mentor in your industry"},
			Resources: []domain.Resource{
				{Title: "Coursera Professional Certificates", Description: "Industry-recognised skills training", URL: "https://www.coursera.org", Provider: "Coursera", Duration: "3-6 months"},
				{Title: "Khan Academy", Description: "Free courses on foundational subjects", URL: "https://www.khanacademy.org", Provider: "Khan Academy", Duration: "Self-paced"},
			},
			Projects: []domain.Project{
				{Title: "Portfolio Website", Description: "Create a professional site showcasing your work", Skills: []string{"Web Presence", "Design", "Content Creation"}, Difficulty: domain.DifficultyBeginner},
				{Title: fmt.Sprintf("%s Industry Analysis Report", course), Description: fmt.Sprintf("Research and analyse trends in the %s job market", course), Skills: []string{"Research", "Analysis", "Communication"}, Difficulty: domain.DifficultyIntermediate},
			},
		},
	}
}
