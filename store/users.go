package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"location-service/apperr"
	"location-service/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, api_key, created_at, last_login`

// Users is the credential store. E-mail and API key uniqueness are enforced by
// the schema, so concurrent conflicting inserts are serialized by the database.
type Users struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db, now: time.Now}
}

// CreateUser inserts a new user and returns it with its assigned id and creation time.
// It fails with ErrDuplicateEmail or ErrDuplicateAPIKey on collision.
func (s *Users) CreateUser(ctx context.Context, email, passwordHash, apiKey string) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		APIKey:       apiKey,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}

	query := s.db.Rebind(`INSERT INTO users (id, email, password_hash, api_key, created_at) VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.APIKey, user.CreatedAt)
	if err != nil {
		if dup := uniqueViolation(err); dup != nil {
			return nil, dup
		}
		return nil, apperr.Unavailable("insert user", err)
	}
	return user, nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (s *Users) FindByAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE api_key = ?`, apiKey)
}

func (s *Users) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, s.db.Rebind(query), arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Unavailable("query user", err)
	}
	return &user, nil
}

// UpdateLastLogin sets last_login for the user. Updating an unknown id is a no-op.
func (s *Users) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := s.db.Rebind(`UPDATE users SET last_login = ? WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, query, at.UTC().Truncate(time.Microsecond), userID); err != nil {
		return apperr.Unavailable("update last login", err)
	}
	return nil
}
