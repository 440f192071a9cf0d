package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
)

const userColumns = `id, email, password_hash, name, avatar_url, onboarding_stage, onboarding_complete, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AvatarURL,
		&u.OnboardingStage, &u.OnboardingComplete, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

// Create inserts u. A zero CreatedAt takes the database clock.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	var createdAt *time.Time
	if !u.CreatedAt.IsZero() {
		createdAt = &u.CreatedAt
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url, onboarding_stage, onboarding_complete, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.AvatarURL, u.OnboardingStage, u.OnboardingComplete, createdAt)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// Update writes profile and onboarding fields. onboarding_complete only ever
// moves from false to true.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, avatar_url = $4,
		    onboarding_stage = $5, onboarding_complete = onboarding_complete OR $6,
		    updated_at = $7
		WHERE id = $8
	`, u.Email, u.Password, u.Name, u.AvatarURL, u.OnboardingStage, u.OnboardingComplete, u.UpdatedAt, u.ID)
	if err != nil {
		return mapErr(err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) ListOnboardingIncomplete(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE onboarding_complete = FALSE
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
