// internal/workers/matching/analyze-skill-insights/models.go
package analyzeskillinsights

import (
	"time"

	"internship-workers/internal/matching"
)

type Input struct {
	UserID string `json:"userId"`
}

type Output struct {
	Profile         ProfileInsights     `json:"profile"`
	Applications    ApplicationInsights `json:"applications"`
	Recommendations SkillAdvice         `json:"recommendations"`
}

type ProfileInsights struct {
	Skills      []string `json:"skills"`
	SkillsCount int      `json:"skillsCount"`
}

type ApplicationInsights struct {
	matching.ApplicationSummary
	History []ApplicationEntry `json:"history"`
}

// ApplicationEntry rescored against the current profile, not the snapshot
// taken when the application was recorded.
type ApplicationEntry struct {
	InternshipID string    `json:"internshipId"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	AppliedAt    time.Time `json:"appliedAt"`
	Status       string    `json:"status"`
	MatchScore   int       `json:"matchScore"`
	SkillsMatch  int       `json:"skillsMatch"`
}

type SkillAdvice struct {
	SkillGaps       []matching.SkillDemand     `json:"skillGaps"`
	SuggestedSkills []matching.SkillSuggestion `json:"suggestedSkills"`
}
