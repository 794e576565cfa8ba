package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("duplicate email")
	ErrDuplicateAPIKey = errors.New("duplicate api key")
	// ErrDuplicate is returned for unique violations on columns without a dedicated sentinel.
	ErrDuplicate = errors.New("duplicate key")
)

const pgUniqueViolation = "23505"

// uniqueViolation translates a driver unique-constraint error into a store sentinel.
// It returns nil when err is not a unique violation.
func uniqueViolation(err error) error {
	var detail string

	var liteErr sqlite3.Error
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		// "UNIQUE constraint failed: users.email"
		detail = liteErr.Error()
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		detail = pgErr.ConstraintName
	default:
		return nil
	}

	switch {
	case strings.Contains(detail, "email"):
		return ErrDuplicateEmail
	case strings.Contains(detail, "api_key"):
		return ErrDuplicateAPIKey
	default:
		return ErrDuplicate
	}
}
