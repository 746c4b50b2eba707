package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/fairyhunter13/skillbridge-assessor/internal/domain"
)

// Model output is read leniently: numbers may arrive as strings ("72" or
// "72%"), list fields that are not arrays count as absent, and blank
// entries are dropped.

// readFloat reads a number or numeric string.
func readFloat(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		s := strings.TrimSuffix(strings.TrimSpace(r.Str), "%")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// readScore reads a 0-100 value, clamping out-of-range numbers. The clamp
// runs on the float so huge values cannot overflow int.
func readScore(r gjson.Result) (int, bool) {
	f, ok := readFloat(r)
	if !ok || math.IsNaN(f) {
		return 0, false
	}
	return int(math.Round(math.Min(math.Max(f, 0), 100))), true
}

// readStrings reads an array of scalars as trimmed, non-blank strings.
func readStrings(r gjson.Result) ([]string, bool) {
	if !r.IsArray() {
		return nil, false
	}
	out := []string{}
	r.ForEach(func(_, v gjson.Result) bool {
		if v.IsObject() || v.IsArray() {
			return true
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out, true
}

func readResources(r gjson.Result) ([]domain.Resource, bool) {
	if !r.IsArray() {
		return nil, false
	}
	out := []domain.Resource{}
	r.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		title := strings.TrimSpace(v.Get("title").String())
		if title == "" {
			return true
		}
		out = append(out, domain.Resource{
			Title:       title,
			Description: strings.TrimSpace(v.Get("description").String()),
			URL:         strings.TrimSpace(v.Get("url").String()),
			Provider:    strings.TrimSpace(v.Get("provider").String()),
			Duration:    strings.TrimSpace(v.Get("duration").String()),
		})
		return true
	})
	return out, true
}

func readProjects(r gjson.Result) ([]domain.Project, bool) {
	if !r.IsArray() {
		return nil, false
	}
	out := []domain.Project{}
	r.ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			return true
		}
		title := strings.TrimSpace(v.Get("title").String())
		if title == "" {
			return true
		}
		skills, ok := readStrings(v.Get("skills"))
		if !ok {
			skills = []string{}
		}
		out = append(out, domain.Project{
			Title:       title,
			Description: strings.TrimSpace(v.Get("description").String()),
			Skills:      skills,
			Difficulty:  domain.ParseDifficulty(v.Get("difficulty").String()),
		})
		return true
	})
	return out, true
}

// mergeSkills overlays fields present in obj onto base.
func mergeSkills(obj gjson.Result, base domain.SkillsAnalysis) domain.SkillsAnalysis {
	if v, ok := readStrings(obj.Get("currentSkills")); ok {
		base.CurrentSkills = v
	}
	if v, ok := readStrings(obj.Get("missingSkills")); ok {
		base.MissingSkills = v
	}
	if v, ok := readStrings(obj.Get("strengthAreas")); ok {
		base.StrengthAreas = v
	}
	if v, ok := readStrings(obj.Get("improvementAreas")); ok {
		base.ImprovementAreas = v
	}
	if v, ok := readStrings(obj.Get("recommendedPath")); ok {
		base.RecommendedPath = v
	}
	return base
}

// mergePlan overlays fields present in obj onto base.
func mergePlan(obj gjson.Result, base domain.PersonalizedPlan) domain.PersonalizedPlan {
	if v, ok := readStrings(obj.Get("shortTerm")); ok {
		base.ShortTerm = v
	}
	if v, ok := readStrings(obj.Get("mediumTerm")); ok {
		base.MediumTerm = v
	}
	if v, ok := readStrings(obj.Get("longTerm")); ok {
		base.LongTerm = v
	}
	if v, ok := readResources(obj.Get("resources")); ok {
		base.Resources = v
	}
	if v, ok := readProjects(obj.Get("projects")); ok {
		base.Projects = v
	}
	return base
}

// isFullReport: skillsAnalysis and personalizedPlan are both objects.
func isFullReport(doc gjson.Result) bool {
	return doc.IsObject() &&
		doc.Get("skillsAnalysis").IsObject() &&
		doc.Get("personalizedPlan").IsObject()
}

// isSimplifiedReport: skillsAnalysis is an object or the score is readable.
func isSimplifiedReport(doc gjson.Result) bool {
	if !doc.IsObject() {
		return false
	}
	if doc.Get("skillsAnalysis").IsObject() {
		return true
	}
	_, ok := readFloat(doc.Get("employabilityScore"))
	return ok
}

// decodeReport builds a report from a validated model document. Fields the
// model left out come from base, which must already satisfy every invariant.
func decodeReport(doc gjson.Result, base domain.Report, defaultConfidence int) domain.Report {
	r := base
	r.SkillsAnalysis = mergeSkills(doc.Get("skillsAnalysis"), base.SkillsAnalysis)
	r.PersonalizedPlan = mergePlan(doc.Get("personalizedPlan"), base.PersonalizedPlan)
	if v, ok := readScore(doc.Get("employabilityScore")); ok {
		r.EmployabilityScore = v
	}
	r.Confidence = defaultConfidence
	if v, ok := readScore(doc.Get("confidence")); ok {
		r.Confidence = v
	}
	return r
}
