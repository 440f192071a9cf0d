package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/entity"
	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
)

// testPool connects to TEST_DATABASE_URL and migrates it; tests using it
// are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	require.NoError(t, err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../db/migrations", "postgres", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}

	pool, err := NewPool(context.Background(), dsn, 16, 1, time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func createTestUser(t *testing.T, pool *pgxpool.Pool) *entity.User {
	t.Helper()
	u := &entity.User{Email: uuid.NewString() + "@example.com", Password: "x", Name: "Test"}
	require.NoError(t, NewUserRepository(pool).Create(context.Background(), u))
	return u
}

func TestReminderRepository_ConcurrentClaims(t *testing.T) {
	pool := testPool(t)
	reminders := NewReminderRepository(pool)
	u := createTestUser(t, pool)
	ctx := context.Background()
	at := time.Now().UTC()

	_, err := reminders.Get(ctx, u.ID, 2, 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var won atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := reminders.Claim(ctx, u.ID, 2, 1, at)
			assert.NoError(t, err)
			if ok {
				won.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), won.Load())

	rec, err := reminders.Get(ctx, u.ID, 2, 1)
	require.NoError(t, err)
	assert.True(t, rec.Sent)
	require.NotNil(t, rec.SentAt)
}

func TestReminderRepository_ReleaseAllowsReclaim(t *testing.T) {
	pool := testPool(t)
	reminders := NewReminderRepository(pool)
	u := createTestUser(t, pool)
	ctx := context.Background()
	at := time.Now().UTC()

	ok, err := reminders.Claim(ctx, u.ID, 0, 0, at)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = reminders.Claim(ctx, u.ID, 0, 0, at)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, reminders.Release(ctx, u.ID, 0, 0))
	rec, err := reminders.Get(ctx, u.ID, 0, 0)
	require.NoError(t, err)
	assert.False(t, rec.Sent)
	assert.Nil(t, rec.SentAt)

	ok, err = reminders.Claim(ctx, u.ID, 0, 0, at)
	require.NoError(t, err)
	assert.True(t, ok)
}
