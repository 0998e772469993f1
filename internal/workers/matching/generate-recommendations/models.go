// internal/workers/matching/generate-recommendations/models.go
package generaterecommendations

import (
	"encoding/json"

	"internship-workers/internal/matching"
)

type Input struct {
	UserID         string          `json:"userId"`
	UserProfile    json.RawMessage `json:"userProfile,omitempty"`
	Limit          *int            `json:"limit,omitempty"`
	IncludeApplied bool            `json:"includeApplied"`
}

type Output struct {
	Recommendations []matching.Recommendation `json:"recommendations"`
	UserProfile     ProfileEcho               `json:"userProfile"`
	Metadata        Metadata                  `json:"metadata"`
}

type ProfileEcho struct {
	Skills      []string             `json:"skills"`
	Preferences matching.Preferences `json:"preferences"`
}

type Metadata struct {
	TotalInternships int    `json:"totalInternships"`
	AlgorithmVersion string `json:"algorithmVersion"`
	GeneratedAt      string `json:"generatedAt"`
}
