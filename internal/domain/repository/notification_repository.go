package repository

import (
	"context"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	MarkSent(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error)
}
