package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
)

type ReminderRepository struct {
	pool *pgxpool.Pool
}

func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

func (r *ReminderRepository) Get(ctx context.Context, userID string, stage, level int) (*entity.ReminderRecord, error) {
	rec := &entity.ReminderRecord{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, stage, reminder_level, sent, sent_at, created_at
		FROM onboarding_reminders
		WHERE user_id = $1 AND stage = $2 AND reminder_level = $3
	`, userID, stage, level).Scan(&rec.ID, &rec.UserID, &rec.Stage, &rec.ReminderLevel, &rec.Sent, &rec.SentAt, &rec.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return rec, nil
}

// Claim inserts the tuple as sent, or flips an unsent one. When the row is
// already sent the conflict update matches nothing and no row comes back.
func (r *ReminderRepository) Claim(ctx context.Context, userID string, stage, level int, sentAt time.Time) (bool, error) {
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO onboarding_reminders (user_id, stage, reminder_level, sent, sent_at)
		VALUES ($1, $2, $3, TRUE, $4)
		ON CONFLICT (user_id, stage, reminder_level)
		DO UPDATE SET sent = TRUE, sent_at = EXCLUDED.sent_at
		WHERE onboarding_reminders.sent = FALSE
		RETURNING id
	`, userID, stage, level, sentAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, mapErr(err)
	}
	return true, nil
}

func (r *ReminderRepository) Release(ctx context.Context, userID string, stage, level int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE onboarding_reminders
		SET sent = FALSE, sent_at = NULL
		WHERE user_id = $1 AND stage = $2 AND reminder_level = $3
	`, userID, stage, level)
	return err
}

var _ repository.ReminderRepository = (*ReminderRepository)(nil)
