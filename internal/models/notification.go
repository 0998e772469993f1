// internal/models/notification.go
package models

import "time"

type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "pending"
	ReminderStatusSent    ReminderStatus = "sent"
	ReminderStatusFailed  ReminderStatus = "failed"
	ReminderStatusSkipped ReminderStatus = "skipped"
)

const PriorityHigh = "high"

type Reminder struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	ApplicationID string         `json:"applicationId,omitempty"`
	Title         string         `json:"title"`
	Message       string         `json:"message"`
	Priority      string         `json:"priority"` // "low", "medium", "high"
	Status        ReminderStatus `json:"status"`
	DueAt         time.Time      `json:"dueAt"`
}
