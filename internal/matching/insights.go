// internal/matching/insights.go
package matching

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultMinDemand  = 3
	DefaultMaxGaps    = 10
	maxSuggestions    = 3
	maxSuggestedSkill = 3
	highMatchScore    = 75
)

type SkillDemand struct {
	Skill    string `json:"skill"`
	Demand   int    `json:"demand"`
	Priority string `json:"priority"`
}

type SkillSuggestion struct {
	Cluster         string   `json:"cluster"`
	SuggestedSkills []string `json:"suggestedSkills"`
	Reason          string   `json:"reason"`
}

type skillCluster struct {
	name   string
	skills []string
}

var skillClusters = []skillCluster{
	{"web-development", []string{"React", "Node.js", "JavaScript", "HTML", "CSS", "MongoDB", "Express"}},
	{"data-science", []string{"Python", "Pandas", "NumPy", "Scikit-learn", "TensorFlow", "SQL", "Matplotlib"}},
	{"mobile-development", []string{"React Native", "Flutter", "Swift", "Kotlin", "iOS", "Android"}},
	{"devops", []string{"Docker", "Kubernetes", "AWS", "Git", "CI/CD", "Linux", "Terraform"}},
	{"ai-ml", []string{"Python", "TensorFlow", "PyTorch", "OpenCV", "NLP", "Deep Learning"}},
}

// SkillDemandGaps counts how often each requirement appears across the
// catalog and returns the most demanded ones the user does not list.
func SkillDemandGaps(userSkills []string, catalog []*Internship, minDemand, top int) []SkillDemand {
	if minDemand <= 0 {
		minDemand = DefaultMinDemand
	}
	if top <= 0 {
		top = DefaultMaxGaps
	}

	freq := make(map[string]int)
	var order []string
	for _, in := range catalog {
		if in == nil {
			continue
		}
		for _, req := range in.Requirements {
			n := NormalizeSkill(req)
			if _, ok := freq[n]; !ok {
				order = append(order, n)
			}
			freq[n]++
		}
	}

	have := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		have[strings.ToLower(s)] = true
	}

	gaps := make([]SkillDemand, 0)
	for _, skill := range order {
		if have[skill] || freq[skill] < minDemand {
			continue
		}
		gaps = append(gaps, SkillDemand{
			Skill:    capitalize(skill),
			Demand:   freq[skill],
			Priority: demandPriority(freq[skill]),
		})
	}

	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Demand > gaps[j].Demand
	})
	if len(gaps) > top {
		gaps = gaps[:top]
	}
	return gaps
}

func demandPriority(n int) string {
	switch {
	case n >= 10:
		return "high"
	case n >= 5:
		return "medium"
	}
	return "low"
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SuggestSkills looks for skill clusters where the user already has at
// least two skills and proposes what is missing.
func SuggestSkills(userSkills []string) []SkillSuggestion {
	lower := make([]string, len(userSkills))
	for i, s := range userSkills {
		lower[i] = strings.ToLower(s)
	}
	hasSkill := func(skill string) bool {
		needle := strings.ToLower(skill)
		for _, s := range lower {
			if strings.Contains(s, needle) {
				return true
			}
		}
		return false
	}

	out := make([]SkillSuggestion, 0, maxSuggestions)
	for _, c := range skillClusters {
		var owned, missing []string
		for _, skill := range c.skills {
			if hasSkill(skill) {
				owned = append(owned, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		if len(owned) < 2 || len(missing) == 0 {
			continue
		}
		if len(missing) > maxSuggestedSkill {
			missing = missing[:maxSuggestedSkill]
		}
		out = append(out, SkillSuggestion{
			Cluster:         strings.ToUpper(strings.Replace(c.name, "-", " ", 1)),
			SuggestedSkills: missing,
			Reason:          fmt.Sprintf("You have %d skills in this area", len(owned)),
		})
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

type ApplicationMatch struct {
	InternshipID string `json:"internshipId"`
	MatchScore   int    `json:"matchScore"`
}

type ApplicationSummary struct {
	Total             int `json:"total"`
	AverageMatchScore int `json:"averageMatchScore"`
	HighMatches       int `json:"highMatches"`
}

func SummarizeApplications(apps []ApplicationMatch) ApplicationSummary {
	s := ApplicationSummary{Total: len(apps)}
	if len(apps) == 0 {
		return s
	}
	sum := 0
	for _, a := range apps {
		sum += a.MatchScore
		if a.MatchScore >= highMatchScore {
			s.HighMatches++
		}
	}
	s.AverageMatchScore = int(math.Round(float64(sum) / float64(len(apps))))
	return s
}
