// internal/matching/preferences.go
package matching

import (
	"math"
	"strings"
)

var industryKeywords = map[string][]string{
	"technology": {"tech", "software", "ai", "ml", "data", "cloud"},
	"finance":    {"bank", "finance", "fintech", "trading", "investment"},
	"healthcare": {"health", "medical", "pharma", "biotech"},
	"education":  {"education", "learning", "university", "school"},
	"ecommerce":  {"ecommerce", "retail", "marketplace", "shopping"},
}

const (
	neutralLocation = 70
	neutralWorkType = 70
	neutralInterest = 60
	baseCompany     = 70
	industryBonus   = 20
)

// ScoreLocation applies the location rules top to bottom; the first rule
// that holds decides the score.
func ScoreLocation(prefs Preferences, in *Internship) int {
	pref := prefs.Location

	if pref == RemoteLocation && in.Type == WorkTypeRemote {
		return 100
	}
	if pref != "" && pref != RemoteLocation {
		if containsFold(in.Location, pref) {
			return 100
		}
		// unreachable: the rule above already matched
		if in.Type == WorkTypeHybrid && containsFold(in.Location, pref) {
			return 85
		}
	}
	if pref == "" {
		return neutralLocation
	}

	switch in.Type {
	case WorkTypeRemote:
		return 60
	case WorkTypeHybrid:
		return 50
	}
	return 30
}

func ScoreWorkType(prefs Preferences, in *Internship) int {
	switch {
	case prefs.WorkType == "":
		return neutralWorkType
	case prefs.WorkType == in.Type:
		return 100
	case prefs.WorkType == WorkTypeHybrid && (in.Type == WorkTypeRemote || in.Type == WorkTypeOnSite):
		return 75
	}
	return 40
}

func ScoreInterests(interests []string, in *Internship) int {
	if len(interests) == 0 {
		return neutralInterest
	}

	parts := make([]string, 0, len(in.Tags)+3)
	parts = append(parts, in.Tags...)
	parts = append(parts, in.Title, in.Company, in.Description)
	haystack := strings.ToLower(strings.Join(parts, " "))

	hits := 0
	for _, interest := range interests {
		if strings.Contains(haystack, strings.ToLower(interest)) {
			hits++
		}
	}

	pct := float64(hits) / float64(len(interests)) * 100
	return int(math.Min(math.Round(pct), 100))
}

// ScoreCompany rewards an industry keyword found in the company name or
// description. Company size is accepted but not scored.
func ScoreCompany(prefs Preferences, in *Internship) int {
	score := baseCompany
	if prefs.Industry != "" {
		info := strings.ToLower(in.Company + " " + in.Description)
		for _, kw := range industryKeywords[strings.ToLower(prefs.Industry)] {
			if strings.Contains(info, kw) {
				score += industryBonus
				break
			}
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

func containsFold(s, substr string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
