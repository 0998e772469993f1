// internal/models/application.go
package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusWishlist     ApplicationStatus = "wishlist"
	ApplicationStatusApplied      ApplicationStatus = "applied"
	ApplicationStatusInterviewing ApplicationStatus = "interviewing"
	ApplicationStatusOffered      ApplicationStatus = "offered"
	ApplicationStatusRejected     ApplicationStatus = "rejected"
	ApplicationStatusAccepted     ApplicationStatus = "accepted"
)

var applicationStatuses = map[ApplicationStatus]bool{
	ApplicationStatusWishlist:     true,
	ApplicationStatusApplied:      true,
	ApplicationStatusInterviewing: true,
	ApplicationStatusOffered:      true,
	ApplicationStatusRejected:     true,
	ApplicationStatusAccepted:     true,
}

func (s ApplicationStatus) Valid() bool {
	return applicationStatuses[s]
}

// Application is a row of the applications table. MatchScore is the overall
// score at the time the application was recorded; nil when no profile was
// available.
type Application struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	InternshipID string            `json:"internshipId"`
	Status       ApplicationStatus `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	CoverLetter  string            `json:"coverLetter,omitempty"`
	MatchScore   *int              `json:"matchScore,omitempty"`
	AppliedAt    time.Time         `json:"appliedAt"`
}
