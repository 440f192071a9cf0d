package entity

import "time"

type NotificationType string

const (
	NotificationComplaintStatus    NotificationType = "complaint_status"
	NotificationOnboardingReminder NotificationType = "onboarding_reminder"
)

// NotificationMetadata correlates a notification with what triggered it.
// Complaint notices fill the complaint fields, reminders fill stage/level.
type NotificationMetadata struct {
	ComplaintID   string          `json:"complaint_id,omitempty"`
	OldStatus     ComplaintStatus `json:"old_status,omitempty"`
	NewStatus     ComplaintStatus `json:"new_status,omitempty"`
	Stage         *int            `json:"stage,omitempty"`
	ReminderLevel *int            `json:"reminder_level,omitempty"`
}

// Notification is created unsent and flipped to IsSent by the sink right
// after dispatch. It is never deleted by the application.
type Notification struct {
	ID        string
	UserID    string
	Type      NotificationType
	Title     string
	Body      string
	IsSent    bool
	Metadata  NotificationMetadata
	CreatedAt time.Time
}
