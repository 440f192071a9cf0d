package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-complaint-tracker/config"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/notification"
	"github.com/oksasatya/go-complaint-tracker/pkg/mailer"
	mailtpl "github.com/oksasatya/go-complaint-tracker/pkg/mailer/templates"
)

// Outcome tells the consumer loop what to do with a delivery.
type Outcome int

const (
	Ack     Outcome = iota
	Drop            // malformed, rejected or out of attempts
	Requeue         // transient send failure
)

const defaultMaxAttempts = 5

// EmailHandler renders a queued mailer.NotificationJob and sends it.
type EmailHandler struct {
	Sender  mailer.Sender
	Config  *config.Config
	Logger  *logrus.Logger
	Timeout time.Duration
	// MaxAttempts caps deliveries of one job, the first included.
	MaxAttempts int
}

func NewEmailHandler(sender mailer.Sender, cfg *config.Config, logger *logrus.Logger) *EmailHandler {
	return &EmailHandler{Sender: sender, Config: cfg, Logger: logger, Timeout: 15 * time.Second, MaxAttempts: defaultMaxAttempts}
}

// Handle processes one delivery. attempt counts earlier failed deliveries
// of the same job, starting at zero.
func (h *EmailHandler) Handle(ctx context.Context, body []byte, attempt int) Outcome {
	var job mailer.NotificationJob
	if err := json.Unmarshal(body, &job); err != nil || job.To == "" {
		h.log().WithError(err).Warn("bad notification job")
		return Drop
	}

	subject, text, html, err := mailtpl.Render(mailtpl.Notification, h.data(job))
	if err != nil {
		h.log().WithError(err).WithField("notification_id", job.NotificationID).Error("render notification email failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, h.Timeout)
	defer cancel()
	if err := h.Sender.Send(c, job.To, subject, text, html); err != nil {
		entry := h.log().WithError(err).WithFields(logrus.Fields{"notification_id": job.NotificationID, "attempt": attempt + 1})
		switch {
		case mailer.Permanent(err):
			entry.Error("notification email rejected, dropping")
			return Drop
		case attempt+1 >= h.maxAttempts():
			entry.Error("notification email out of attempts, dropping")
			return Drop
		}
		entry.Warn("send notification email failed")
		return Requeue
	}
	h.log().WithFields(logrus.Fields{"notification_id": job.NotificationID, "kind": job.Kind}).Info("notification email sent")
	return Ack
}

func (h *EmailHandler) maxAttempts() int {
	if h.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return h.MaxAttempts
}

func (h *EmailHandler) data(job mailer.NotificationJob) mailtpl.EmailData {
	opts := []mailtpl.Option{mailtpl.WithSentAt(job.CreatedAt)}
	if id := job.Meta["complaint_id"]; id != "" {
		opts = append(opts, mailtpl.WithComplaint(id, job.Meta["new_status"]))
	}
	if s, err := strconv.Atoi(job.Meta["stage"]); err == nil {
		opts = append(opts, mailtpl.WithStageName(notification.StageName(s)))
	}
	return mailtpl.NewNotificationData(h.Config, job.Kind, job.Name, job.To, job.Title, job.Body, opts...)
}

func (h *EmailHandler) log() *logrus.Logger {
	if h.Logger == nil {
		return logrus.StandardLogger()
	}
	return h.Logger
}
