package mailer

import "time"

// NotificationJob is the JSON payload put on the RabbitMQ queue for every
// notification that should also reach the user's inbox.
type NotificationJob struct {
	NotificationID string            `json:"notification_id"`
	UserID         string            `json:"user_id"`
	To             string            `json:"to"`
	Name           string            `json:"name,omitempty"`
	Kind           string            `json:"kind"` // complaint_status, onboarding_reminder
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Meta           map[string]string `json:"meta,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
