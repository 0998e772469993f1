// internal/workers/matching/bulk-match-internships/models.go
package bulkmatchinternships

import (
	"encoding/json"

	"internship-workers/internal/matching"
)

type Input struct {
	UserID        string          `json:"userId"`
	UserProfile   json.RawMessage `json:"userProfile,omitempty"`
	InternshipIDs []string        `json:"internshipIds"`
}

type Output struct {
	Matches  []matching.BulkMatch `json:"matches"`
	Metadata Metadata             `json:"metadata"`
}

// Metadata reports how many ids were asked for and how many could be
// scored; ids that do not resolve are dropped silently.
type Metadata struct {
	Requested        int    `json:"requested"`
	Processed        int    `json:"processed"`
	AlgorithmVersion string `json:"algorithmVersion"`
}
