package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	meta, err := json.Marshal(n.Metadata)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, type, title, body, is_sent, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, n.UserID, n.Type, n.Title, n.Body, n.IsSent, meta, n.CreatedAt)
	return mapErr(row.Scan(&n.ID))
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `UPDATE notifications SET is_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, title, body, is_sent, metadata, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []*entity.Notification{}
	for rows.Next() {
		n := &entity.Notification{}
		var meta []byte
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.IsSent, &meta, &n.CreatedAt); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &n.Metadata); err != nil {
				return nil, fmt.Errorf("decode notification metadata: %w", err)
			}
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
