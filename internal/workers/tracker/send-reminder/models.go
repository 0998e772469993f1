// internal/workers/tracker/send-reminder/models.go
package sendreminder

type Input struct {
	ReminderID string `json:"reminderId"`
}

type Output struct {
	NotificationID string  `json:"notificationId"`
	Status         string  `json:"status"`
	SentAt         *string `json:"sentAt"`
	SMSSent        bool    `json:"smsSent"`
}
