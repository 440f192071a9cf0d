// Package messaging hands recorded notifications to an outbound transport.
package messaging

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
	"github.com/oksasatya/go-complaint-tracker/pkg/mailer"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueDeliverer publishes a mailer.NotificationJob per notification; the
// notification worker turns it into an email.
type QueueDeliverer struct {
	Users     repository.UserRepository
	Publisher Publisher
}

func NewQueueDeliverer(users repository.UserRepository, p Publisher) *QueueDeliverer {
	return &QueueDeliverer{Users: users, Publisher: p}
}

func (d *QueueDeliverer) Deliver(ctx context.Context, n *entity.Notification) error {
	u, err := d.Users.GetByID(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("load recipient: %w", err)
	}
	return d.Publisher.PublishJSON(ctx, NewJob(n, u))
}

// NewJob flattens a notification and its recipient into a queue payload.
func NewJob(n *entity.Notification, u *entity.User) mailer.NotificationJob {
	meta := map[string]string{}
	m := n.Metadata
	if m.ComplaintID != "" {
		meta["complaint_id"] = m.ComplaintID
	}
	if m.OldStatus != "" {
		meta["old_status"] = string(m.OldStatus)
	}
	if m.NewStatus != "" {
		meta["new_status"] = string(m.NewStatus)
	}
	if m.Stage != nil {
		meta["stage"] = strconv.Itoa(*m.Stage)
	}
	if m.ReminderLevel != nil {
		meta["reminder_level"] = strconv.Itoa(*m.ReminderLevel)
	}
	return mailer.NotificationJob{
		NotificationID: n.ID,
		UserID:         n.UserID,
		To:             u.Email,
		Name:           u.Name,
		Kind:           string(n.Type),
		Title:          n.Title,
		Body:           n.Body,
		Meta:           meta,
		CreatedAt:      n.CreatedAt,
	}
}

// LogDeliverer only logs; used when MAIL_SEND_ENABLED is off.
type LogDeliverer struct {
	Logger *logrus.Logger
}

func (d LogDeliverer) Deliver(_ context.Context, n *entity.Notification) error {
	if d.Logger != nil {
		d.Logger.WithFields(logrus.Fields{
			"notification_id": n.ID,
			"user_id":         n.UserID,
			"type":            n.Type,
			"title":           n.Title,
		}).Info("notification delivered to log")
	}
	return nil
}
