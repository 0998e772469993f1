// internal/workers/catalog/search-internships/models.go
package searchinternships

import "internship-workers/internal/matching"

type Input struct {
	Query      string     `json:"query,omitempty"`
	Company    string     `json:"company,omitempty"`
	Type       string     `json:"type,omitempty"`
	Location   string     `json:"location,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Internships []Result `json:"internships"`
	TotalHits   int64    `json:"totalHits"`
	MaxScore    float64  `json:"maxScore"`
	Took        int64    `json:"took"` // milliseconds
}

type Result struct {
	matching.InternshipSummary
	Score float64 `json:"score"`
}
