// Package complaint holds the pure complaint lifecycle rules: the status
// transition graph, detail validation per type and elapsed-time metrics.
package complaint

import (
	"time"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/notification"
)

// AllowedTransitions returns the successor set of s. Closed is terminal.
func AllowedTransitions(s entity.ComplaintStatus) []entity.ComplaintStatus {
	switch s {
	case entity.StatusRaised:
		return []entity.ComplaintStatus{entity.StatusInProgress, entity.StatusClosed}
	case entity.StatusInProgress:
		return []entity.ComplaintStatus{entity.StatusWaitingOnUser, entity.StatusResolved, entity.StatusClosed}
	case entity.StatusWaitingOnUser:
		return []entity.ComplaintStatus{entity.StatusInProgress, entity.StatusResolved, entity.StatusClosed}
	case entity.StatusResolved:
		return []entity.ComplaintStatus{entity.StatusClosed}
	case entity.StatusClosed:
		return nil
	}
	return nil
}

// ValidateTransition rejects no-op moves and anything off the graph.
func ValidateTransition(current, requested entity.ComplaintStatus) error {
	if current == requested {
		return &InvalidTransitionError{From: current, To: requested}
	}
	for _, next := range AllowedTransitions(current) {
		if next == requested {
			return nil
		}
	}
	return &InvalidTransitionError{From: current, To: requested}
}

// NotifiesOn reports whether entering s produces a status-change notice.
func NotifiesOn(s entity.ComplaintStatus) bool {
	switch s {
	case entity.StatusInProgress, entity.StatusResolved:
		return true
	case entity.StatusRaised, entity.StatusWaitingOnUser, entity.StatusClosed:
		return false
	}
	return false
}

// Apply moves c to requested at now and returns the notification the caller
// must hand to the sink, or nil when the new status is not announced.
// Nothing is persisted or sent here.
//
// StatusUpdatedAt strictly increases at the microsecond precision Postgres
// stores, even when the clock does not.
func Apply(c *entity.Complaint, requested entity.ComplaintStatus, now time.Time) (*entity.Notification, error) {
	if err := ValidateTransition(c.Status, requested); err != nil {
		return nil, err
	}
	now = now.Truncate(time.Microsecond)
	if !now.After(c.StatusUpdatedAt) {
		now = c.StatusUpdatedAt.Add(time.Microsecond)
	}
	old := c.Status
	c.Status = requested
	c.StatusUpdatedAt = now
	c.UpdatedAt = now

	if !NotifiesOn(requested) {
		return nil, nil
	}
	content := notification.ComplaintStatusContent(requested, c.ID, c.Type)
	return &entity.Notification{
		UserID: c.UserID,
		Type:   entity.NotificationComplaintStatus,
		Title:  content.Title,
		Body:   content.Body,
		Metadata: entity.NotificationMetadata{
			ComplaintID: c.ID,
			OldStatus:   old,
			NewStatus:   requested,
		},
	}, nil
}
