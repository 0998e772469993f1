package models

// Contact is how a user is reached for reminders.
type Contact struct {
	UserID             string `json:"userId"`
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	EmailNotifications bool   `json:"emailNotifications"`
}
