package repository

import (
	"context"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

// ComplaintMutator changes a complaint in place while its row is locked.
// Returning an error aborts the update.
type ComplaintMutator func(c *entity.Complaint) error

type ComplaintRepository interface {
	Create(ctx context.Context, c *entity.Complaint) error
	// GetForUser returns ErrNotFound when the complaint is absent or owned by someone else.
	GetForUser(ctx context.Context, id, userID string) (*entity.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Complaint, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	// UpdateLocked reads the complaint, applies fn and writes status fields
	// back as one atomic unit. Concurrent callers on the same complaint are
	// serialized, so fn always sees the latest committed status.
	UpdateLocked(ctx context.Context, id, userID string, fn ComplaintMutator) (*entity.Complaint, error)
	AddAttachment(ctx context.Context, a *entity.ComplaintAttachment) error
}
