package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-complaint-tracker/config"
	"github.com/oksasatya/go-complaint-tracker/pkg/mailer"
)

type mockSender struct{ mock.Mock }

func (m *mockSender) Send(ctx context.Context, to, subject, text, html string) error {
	return m.Called(to, subject, text, html).Error(0)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func jobBody(t *testing.T, j mailer.NotificationJob) []byte {
	t.Helper()
	b, err := json.Marshal(j)
	require.NoError(t, err)
	return b
}

func TestEmailHandler_SendsRenderedReminder(t *testing.T) {
	sender := &mockSender{}
	h := NewEmailHandler(sender, &config.Config{AppName: "tracker", CompanyName: "Acme"}, quietLogger())

	sender.On("Send", "ana@example.com", "Final Call | Acme",
		mock.MatchedBy(func(text string) bool { return strings.Contains(text, "Onboarding step: Advanced Features") }),
		mock.MatchedBy(func(html string) bool { return strings.Contains(html, "Hi Ana,") }),
	).Return(nil).Once()

	out := h.Handle(context.Background(), jobBody(t, mailer.NotificationJob{
		To:        "ana@example.com",
		Name:      "Ana",
		Kind:      "onboarding_reminder",
		Title:     "Final Call",
		Body:      "Finish onboarding.",
		Meta:      map[string]string{"stage": "2", "reminder_level": "3"},
		CreatedAt: time.Now(),
	}), 0)

	assert.Equal(t, Ack, out)
	sender.AssertExpectations(t)
}

func TestEmailHandler_Outcomes(t *testing.T) {
	sender := &mockSender{}
	h := NewEmailHandler(sender, &config.Config{}, quietLogger())

	assert.Equal(t, Drop, h.Handle(context.Background(), []byte("{not json"), 0))
	assert.Equal(t, Drop, h.Handle(context.Background(), jobBody(t, mailer.NotificationJob{Title: "no recipient"}), 0))
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("mailgun 503"))
	out := h.Handle(context.Background(), jobBody(t, mailer.NotificationJob{
		To:    "a@b.c",
		Kind:  "complaint_status",
		Title: "Complaint Resolved",
		Meta:  map[string]string{"complaint_id": "c1", "new_status": "resolved"},
	}), 0)
	assert.Equal(t, Requeue, out)
}

func TestEmailHandler_RetriesAreCapped(t *testing.T) {
	sender := &mockSender{}
	h := NewEmailHandler(sender, &config.Config{}, quietLogger())
	h.MaxAttempts = 3
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	body := jobBody(t, mailer.NotificationJob{To: "a@b.c", Kind: "complaint_status", Title: "Complaint Resolved"})
	assert.Equal(t, Requeue, h.Handle(context.Background(), body, 0))
	assert.Equal(t, Requeue, h.Handle(context.Background(), body, 1))
	assert.Equal(t, Drop, h.Handle(context.Background(), body, 2))
	assert.Equal(t, Drop, h.Handle(context.Background(), body, 7))
}

func TestEmailHandler_DropsRejectedMessages(t *testing.T) {
	sender := &mockSender{}
	h := NewEmailHandler(sender, &config.Config{}, quietLogger())
	body := jobBody(t, mailer.NotificationJob{To: "not-an-address", Kind: "complaint_status", Title: "Complaint Resolved"})

	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mg.UnexpectedResponseError{Expected: []int{200}, Actual: 400}).Once()
	assert.Equal(t, Drop, h.Handle(context.Background(), body, 0))

	sender.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mg.UnexpectedResponseError{Expected: []int{200}, Actual: 429}).Once()
	assert.Equal(t, Requeue, h.Handle(context.Background(), body, 0))
	sender.AssertExpectations(t)
}
