package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field.
//
// OnboardingStage moves 0 -> 1 -> 2 through actions outside the complaint
// core; reaching CompletionStage flips OnboardingComplete for good.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Password           string    `json:"-"`
	Name               string    `json:"name"`
	AvatarURL          string    `json:"avatar_url"`
	OnboardingStage    int       `json:"onboarding_stage"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
