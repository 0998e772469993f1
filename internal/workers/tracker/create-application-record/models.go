// internal/workers/tracker/create-application-record/models.go
package createapplicationrecord

type Input struct {
	UserID       string `json:"userId"`
	InternshipID string `json:"internshipId"`
	Status       string `json:"status,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CoverLetter  string `json:"coverLetter,omitempty"`
}

type Output struct {
	ApplicationID string `json:"applicationId"`
	Status        string `json:"status"`
	MatchScore    *int   `json:"matchScore"`
	CreatedAt     string `json:"createdAt"`
}
