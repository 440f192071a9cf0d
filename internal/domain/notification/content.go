// Package notification selects the title and body of user notifications.
// Everything here is pure; delivery lives in the application layer.
package notification

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

type Content struct {
	Title string
	Body  string
}

// ComplaintStatusContent picks copy for a complaint entering status.
func ComplaintStatusContent(status entity.ComplaintStatus, complaintID string, t entity.ComplaintType) Content {
	switch status {
	case entity.StatusInProgress:
		return Content{
			Title: "Complaint Update: Now In Progress",
			Body: fmt.Sprintf("Your complaint #%s regarding %s is now being handled by our team. "+
				"We will keep you posted as it moves forward.", complaintID, t),
		}
	case entity.StatusResolved:
		return Content{
			Title: "Complaint Resolved",
			Body: fmt.Sprintf("Good news! Your complaint #%s regarding %s has been resolved. "+
				"Reach out any time if something still looks off.", complaintID, t),
		}
	case entity.StatusRaised, entity.StatusWaitingOnUser, entity.StatusClosed:
	}
	return Content{
		Title: "Complaint Status Update",
		Body:  fmt.Sprintf("Your complaint #%s status has been updated to %s.", complaintID, status),
	}
}

// StageName is the display name of an onboarding stage.
func StageName(stage int) string {
	switch stage {
	case 0:
		return "Getting Started"
	case 1:
		return "Basic Setup"
	case 2:
		return "Advanced Features"
	}
	return fmt.Sprintf("Stage %d", stage)
}

var reminderCopy = map[int][]Content{
	0: {
		{
			Title: "Welcome! Complete Your Profile",
			Body:  "We noticed your profile setup is not finished yet. It takes about two minutes and helps you get the most out of the platform.",
		},
		{
			Title: "3 Days In - Don't Miss Out",
			Body:  "Finish your profile setup to unlock personalised recommendations and everything else waiting for you.",
		},
		{
			Title: "Last Reminder - Complete Setup Today",
			Body:  "This is our final nudge to complete your profile setup. Wrap up onboarding and see what the platform can do.",
		},
	},
	1: {
		{
			Title: "Next Step: Basic Configuration",
			Body:  "Nice progress! Set up your basic configuration next so the platform can fit the way you work.",
		},
		{
			Title: "Complete Your Basic Setup",
			Body:  "You are almost there. Finish the basic configuration to start using the advanced features.",
		},
	},
	2: {
		{
			Title: "Unlock Advanced Features",
			Body:  "You are doing great. Complete the final step to explore the advanced features and become a power user.",
		},
		{
			Title: "Day 1 Check-in: Advanced Setup",
			Body:  "How is it going? The advanced features are built to save you time, give them a look.",
		},
		{
			Title: "3 Days Left: Complete Your Journey",
			Body:  "You have come a long way. Finish the advanced setup to unlock every premium feature.",
		},
		{
			Title: "Final Call: Complete Onboarding",
			Body:  "Last chance to complete the full onboarding. Finish the advanced setup today.",
		},
	},
}

// OnboardingReminderContent returns authored copy for (stage, level), or a
// generic reminder when nothing was written for that level.
func OnboardingReminderContent(stage, level int) Content {
	if msgs, ok := reminderCopy[stage]; ok && level >= 0 && level < len(msgs) {
		return msgs[level]
	}
	name := StageName(stage)
	return Content{
		Title: fmt.Sprintf("%s - Reminder %d", name, level+1),
		Body:  fmt.Sprintf("Don't forget to complete your %s to continue your onboarding journey!", strings.ToLower(name)),
	}
}
