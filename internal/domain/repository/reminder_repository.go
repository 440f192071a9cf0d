package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
)

type ReminderRepository interface {
	// Get returns ErrNotFound when no record exists for the tuple.
	Get(ctx context.Context, userID string, stage, level int) (*entity.ReminderRecord, error)
	// Claim marks the tuple sent at sentAt, inserting it if needed. It is a
	// compare-and-set: claimed is false when the tuple was already sent.
	Claim(ctx context.Context, userID string, stage, level int, sentAt time.Time) (claimed bool, err error)
	// Release flips a claimed tuple back to unsent so a later scan retries it.
	Release(ctx context.Context, userID string, stage, level int) error
}
