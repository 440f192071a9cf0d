package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
)

const complaintColumns = `id, user_id, complaint_type, status, details, created_at, updated_at, status_updated_at`

type ComplaintRepository struct {
	pool *pgxpool.Pool
}

func NewComplaintRepository(pool *pgxpool.Pool) *ComplaintRepository {
	return &ComplaintRepository{pool: pool}
}

func scanComplaint(row pgx.Row) (*entity.Complaint, error) {
	c := &entity.Complaint{}
	var details []byte
	if err := row.Scan(&c.ID, &c.UserID, &c.Type, &c.Status, &details,
		&c.CreatedAt, &c.UpdatedAt, &c.StatusUpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &c.Details); err != nil {
			return nil, fmt.Errorf("decode complaint details: %w", err)
		}
	}
	return c, nil
}

func (r *ComplaintRepository) Create(ctx context.Context, c *entity.Complaint) error {
	details, err := json.Marshal(c.Details)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO complaints (user_id, complaint_type, status, details, created_at, updated_at, status_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, c.UserID, c.Type, c.Status, details, c.CreatedAt, c.UpdatedAt, c.StatusUpdatedAt)
	return mapErr(row.Scan(&c.ID))
}

func (r *ComplaintRepository) GetForUser(ctx context.Context, id, userID string) (*entity.Complaint, error) {
	return scanComplaint(r.pool.QueryRow(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *ComplaintRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Complaint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := []*entity.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ComplaintRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM complaints WHERE user_id = $1`, userID).Scan(&n)
	return n, mapErr(err)
}

// UpdateLocked holds the row with SELECT ... FOR UPDATE while fn runs, then
// writes the status columns in the same transaction.
func (r *ComplaintRepository) UpdateLocked(ctx context.Context, id, userID string, fn repository.ComplaintMutator) (*entity.Complaint, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	c, err := scanComplaint(tx.QueryRow(ctx,
		`SELECT `+complaintColumns+` FROM complaints WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, userID))
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE complaints
		SET status = $1, status_updated_at = $2, updated_at = $3
		WHERE id = $4
	`, c.Status, c.StatusUpdatedAt, c.UpdatedAt, c.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ComplaintRepository) AddAttachment(ctx context.Context, a *entity.ComplaintAttachment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO complaint_attachments (complaint_id, object_path, url, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, a.ComplaintID, a.ObjectPath, a.URL, a.ContentType, a.CreatedAt)
	return mapErr(row.Scan(&a.ID))
}

var _ repository.ComplaintRepository = (*ComplaintRepository)(nil)
