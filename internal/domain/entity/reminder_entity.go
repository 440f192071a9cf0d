package entity

import "time"

// ReminderRecord marks one onboarding reminder level for a user.
// At most one record exists per (UserID, Stage, ReminderLevel); once Sent is
// true the level is never delivered again.
type ReminderRecord struct {
	ID            string
	UserID        string
	Stage         int
	ReminderLevel int
	Sent          bool
	SentAt        *time.Time
	CreatedAt     time.Time
}
