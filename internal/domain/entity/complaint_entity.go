package entity

import "time"

type ComplaintType string

const (
	ComplaintTypeLiveDemo       ComplaintType = "live_demo"
	ComplaintTypeBillingIssue   ComplaintType = "billing_issue"
	ComplaintTypeTechnicalIssue ComplaintType = "technical_issue"
	ComplaintTypeFeedback       ComplaintType = "feedback"
)

// Valid reports whether t is one of the known complaint categories.
func (t ComplaintType) Valid() bool {
	switch t {
	case ComplaintTypeLiveDemo, ComplaintTypeBillingIssue, ComplaintTypeTechnicalIssue, ComplaintTypeFeedback:
		return true
	}
	return false
}

// ComplaintTypes lists every category in declaration order.
func ComplaintTypes() []ComplaintType {
	return []ComplaintType{
		ComplaintTypeLiveDemo,
		ComplaintTypeBillingIssue,
		ComplaintTypeTechnicalIssue,
		ComplaintTypeFeedback,
	}
}

type ComplaintStatus string

const (
	StatusRaised        ComplaintStatus = "raised"
	StatusInProgress    ComplaintStatus = "in_progress"
	StatusWaitingOnUser ComplaintStatus = "waiting_on_user"
	StatusResolved      ComplaintStatus = "resolved"
	StatusClosed        ComplaintStatus = "closed"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusRaised, StatusInProgress, StatusWaitingOnUser, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ComplaintStatuses lists every status, initial state first.
func ComplaintStatuses() []ComplaintStatus {
	return []ComplaintStatus{
		StatusRaised,
		StatusInProgress,
		StatusWaitingOnUser,
		StatusResolved,
		StatusClosed,
	}
}

// ComplaintDetails is the free-form payload whose required keys depend on
// the complaint type. Stored as jsonb.
type ComplaintDetails map[string]any

// Complaint is owned by its User and cascade-deleted with it.
// StatusUpdatedAt changes on every status mutation, CreatedAt never does.
type Complaint struct {
	ID              string
	UserID          string
	Type            ComplaintType
	Status          ComplaintStatus
	Details         ComplaintDetails
	CreatedAt       time.Time
	UpdatedAt       time.Time
	StatusUpdatedAt time.Time
}

// ComplaintAttachment is a file uploaded to object storage for a complaint.
type ComplaintAttachment struct {
	ID          string
	ComplaintID string
	ObjectPath  string
	URL         string
	ContentType string
	CreatedAt   time.Time
}
