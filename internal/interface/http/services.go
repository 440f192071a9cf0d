package handlers

import (
	"context"
	"io"

	"github.com/oksasatya/go-complaint-tracker/internal/application"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/complaint"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

// The application services as seen by the HTTP layer.

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*application.LoginResponse, application.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, string, error)
	Logout(ctx context.Context, userID string) error
}

type UserService interface {
	GetDetails(ctx context.Context, userID string) (*application.UserDetails, error)
	UpdateOnboardingStage(ctx context.Context, userID string, stage int) (*entity.User, error)
}

type ComplaintService interface {
	CreateComplaint(ctx context.Context, userID string, t entity.ComplaintType, details entity.ComplaintDetails) (*entity.Complaint, error)
	ListComplaints(ctx context.Context, userID string) ([]*entity.Complaint, error)
	SearchComplaints(ctx context.Context, userID, q string, size int) ([]map[string]any, error)
	TransitionComplaint(ctx context.Context, complaintID, userID string, requested entity.ComplaintStatus) (*entity.Complaint, error)
	GetComplaintMetrics(ctx context.Context, complaintID, userID string) (complaint.Metrics, error)
	AddAttachment(ctx context.Context, complaintID, userID string, r io.Reader, filename, contentType string) (*entity.ComplaintAttachment, error)
}

type NotificationService interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
}

var (
	_ AuthService         = (*application.UserService)(nil)
	_ UserService         = (*application.UserService)(nil)
	_ ComplaintService    = (*application.ComplaintService)(nil)
	_ NotificationService = (*application.NotificationService)(nil)
)
