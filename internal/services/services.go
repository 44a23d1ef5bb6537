// Package services holds the business rules. Every mutating operation runs
// inside a single transaction; services return apperr errors and leave HTTP
// concerns to the handlers.
package services

import (
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/csssensei/quiply/backend/internal/apperr"
)

const DefaultPerPage = 20

// wrapErr passes typed errors through unchanged and downgrades everything
// else to a logged generic failure, so persistence internals never surface.
func wrapErr(logger *log.Logger, op string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	logger.Printf("%s: %v", op, err)
	return apperr.Internal("Database operation failed")
}

// isDuplicateKey reports whether err is a unique-constraint violation. The
// composite keys on ups and reposts are the concurrency guard: when two
// identical adds race, the loser's insert fails with one of these.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// offsetFor converts a 1-based page to a query offset; pages below 1 are
// treated as page 1.
func offsetFor(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
