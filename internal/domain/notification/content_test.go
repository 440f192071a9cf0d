package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

func TestComplaintStatusContent(t *testing.T) {
	in := ComplaintStatusContent(entity.StatusInProgress, "42", entity.ComplaintTypeBillingIssue)
	assert.Equal(t, "Complaint Update: Now In Progress", in.Title)
	assert.Contains(t, in.Body, "#42")
	assert.Contains(t, in.Body, "billing_issue")

	res := ComplaintStatusContent(entity.StatusResolved, "42", entity.ComplaintTypeFeedback)
	assert.Equal(t, "Complaint Resolved", res.Title)

	generic := ComplaintStatusContent(entity.StatusClosed, "42", entity.ComplaintTypeFeedback)
	assert.Equal(t, "Complaint Status Update", generic.Title)
	assert.Equal(t, "Your complaint #42 status has been updated to closed.", generic.Body)
}

func TestOnboardingReminderContent(t *testing.T) {
	assert.Equal(t, "Welcome! Complete Your Profile", OnboardingReminderContent(0, 0).Title)
	assert.Equal(t, "Final Call: Complete Onboarding", OnboardingReminderContent(2, 3).Title)

	fallback := OnboardingReminderContent(1, 2)
	assert.Equal(t, "Basic Setup - Reminder 3", fallback.Title)
	assert.Contains(t, fallback.Body, "basic setup")

	unknown := OnboardingReminderContent(5, 0)
	assert.Equal(t, "Stage 5 - Reminder 1", unknown.Title)
}
