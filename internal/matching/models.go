// internal/matching/models.go
package matching

import "time"

type WorkType string

const (
	WorkTypeRemote WorkType = "remote"
	WorkTypeOnSite WorkType = "on-site"
	WorkTypeHybrid WorkType = "hybrid"
)

// RemoteLocation is the location preference that asks for remote work
// rather than a place.
const RemoteLocation = "remote"

const (
	MaxBulkItems               = 50
	DefaultRecommendationLimit = 10
	MaxReasons                 = 4
	AlgorithmVersion           = "1.0"
)

// Preferences holds optional user preferences. An empty string means the
// user has not stated a preference.
type Preferences struct {
	Location    string   `json:"location,omitempty"`
	WorkType    WorkType `json:"workType,omitempty"`
	CompanySize string   `json:"companySize,omitempty"`
	Industry    string   `json:"industry,omitempty"`
}

type UserProfile struct {
	Skills      []string    `json:"skills"`
	Preferences Preferences `json:"preferences"`
	Interests   []string    `json:"interests,omitempty"`
}

type Internship struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Company             string     `json:"company"`
	Description         string     `json:"description"`
	Requirements        []string   `json:"requirements"`
	Location            string     `json:"location"`
	Type                WorkType   `json:"type"`
	Tags                []string   `json:"tags"`
	Status              string     `json:"status,omitempty"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

type Breakdown struct {
	SkillsScore   int `json:"skillsScore"`
	LocationScore int `json:"locationScore"`
	WorkTypeScore int `json:"workTypeScore"`
	InterestScore int `json:"interestScore"`
	CompanyScore  int `json:"companyScore"`
}

type MatchResult struct {
	OverallScore  int       `json:"overallScore"`
	Breakdown     Breakdown `json:"breakdown"`
	SkillsMatched []string  `json:"skillsMatched"`
	SkillsGap     []string  `json:"skillsGap"`
}

// InternshipSummary is the subset of an internship shown next to a
// recommendation.
type InternshipSummary struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Company             string     `json:"company"`
	Location            string     `json:"location"`
	Type                WorkType   `json:"type"`
	Requirements        []string   `json:"requirements"`
	Tags                []string   `json:"tags"`
	Description         string     `json:"description"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
}

type Recommendation struct {
	Internship InternshipSummary `json:"internship"`
	Match      MatchResult       `json:"match"`
	Reasons    []string          `json:"reasons"`
}

type BulkMatch struct {
	InternshipID string `json:"internshipId"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	MatchResult
}

// Summarize projects in for display. Requirements and tags are never nil
// so they encode as [].
func Summarize(in *Internship) InternshipSummary {
	return InternshipSummary{
		ID:                  in.ID,
		Title:               in.Title,
		Company:             in.Company,
		Location:            in.Location,
		Type:                in.Type,
		Requirements:        orEmpty(in.Requirements),
		Tags:                orEmpty(in.Tags),
		Description:         in.Description,
		ApplicationDeadline: in.ApplicationDeadline,
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
