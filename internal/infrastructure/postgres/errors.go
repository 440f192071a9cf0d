package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-complaint-tracker/internal/domain/repository"
)

const (
	codeUniqueViolation  = "23505"
	codeInvalidTextValue = "22P02"
)

// mapErr translates driver errors into repository errors. A malformed uuid
// can never match a row, so it reads as not found.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return repository.ErrDuplicate
		case codeInvalidTextValue:
			return repository.ErrNotFound
		}
	}
	return err
}
