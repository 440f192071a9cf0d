package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	"github.com/oksasatya/go-complaint-tracker/pkg/helpers"
)

// Deliverer hands a recorded notification to a transport.
type Deliverer interface {
	Deliver(ctx context.Context, n *entity.Notification) error
}

// Sink durably records a notification and delivers it.
type Sink interface {
	Dispatch(ctx context.Context, n *entity.Notification) (*entity.Notification, error)
}

type NotificationService struct {
	Repo      repo.NotificationRepository
	Deliverer Deliverer
	Logger    *logrus.Logger
	Now       func() time.Time
}

func NewNotificationService(r repo.NotificationRepository, d Deliverer, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: r, Deliverer: d, Logger: logger, Now: time.Now}
}

// Dispatch stores n unsent, delivers it and marks it sent. Retrying is left
// to the transport; any failure comes back as *DispatchError.
func (s *NotificationService) Dispatch(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	n.IsSent = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.Now().UTC()
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, &DispatchError{Op: "record", Err: err}
	}
	if err := s.Deliverer.Deliver(ctx, n); err != nil {
		return n, &DispatchError{Op: "deliver", Err: err}
	}
	if err := s.Repo.MarkSent(ctx, n.ID); err != nil {
		return n, &DispatchError{Op: "mark sent", Err: err}
	}
	n.IsSent = true

	helpers.LogDebug(s.Logger, "notification dispatched", logrus.Fields{
		"notification_id": n.ID,
		"user_id":         n.UserID,
		"type":            n.Type,
	})
	return n, nil
}

// ListForUser returns the newest notifications of a user first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListByUser(ctx, userID, limit)
}
