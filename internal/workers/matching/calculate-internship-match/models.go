// internal/workers/matching/calculate-internship-match/models.go
package calculateinternshipmatch

import (
	"encoding/json"

	"internship-workers/internal/matching"
)

// Input carries either ids to look up or the documents themselves. Inline
// documents take precedence.
type Input struct {
	UserID       string          `json:"userId"`
	UserProfile  json.RawMessage `json:"userProfile,omitempty"`
	InternshipID string          `json:"internshipId"`
	Internship   json.RawMessage `json:"internship,omitempty"`
}

type Output struct {
	Match      matching.MatchResult `json:"match"`
	Internship InternshipRef        `json:"internship"`
	User       UserRef              `json:"user"`
}

type InternshipRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

type UserRef struct {
	Skills []string `json:"skills"`
}
