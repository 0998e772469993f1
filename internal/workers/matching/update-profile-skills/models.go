package updateprofileskills

import "internship-workers/internal/matching"

type Input struct {
	UserID      string                `json:"userId"`
	Skills      []string              `json:"skills"`
	Preferences *matching.Preferences `json:"preferences,omitempty"`
	Interests   []string              `json:"interests,omitempty"`
}

type Output struct {
	Message              string                    `json:"message"`
	UpdatedProfile       UpdatedProfile            `json:"updatedProfile"`
	QuickRecommendations []matching.Recommendation `json:"quickRecommendations"`
}

type UpdatedProfile struct {
	Skills      []string             `json:"skills"`
	Preferences matching.Preferences `json:"preferences"`
}
