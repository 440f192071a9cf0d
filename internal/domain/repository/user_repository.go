package repository

import (
	"context"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// ListOnboardingIncomplete returns every user with onboarding_complete = false.
	ListOnboardingIncomplete(ctx context.Context) ([]*entity.User, error)
}
