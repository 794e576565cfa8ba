package models

import (
	"strings"
	"time"
)

// User represents an account in the system
// PasswordHash and APIKey never leave the service in list/read responses
type User struct {
	ID           string     `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"` // bcrypt; omitted from JSON
	APIKey       string     `json:"-" db:"api_key"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" db:"last_login"` // nil until first password login
}

// Credentials is the request body for /api/register and /api/login
type Credentials struct {
	Email    string `json:"email" validate:"required,account_email"`
	Password string `json:"password" validate:"required"` // Plaintext; hashed before storage
}

// APIKeyResponse is returned by register and login
type APIKeyResponse struct {
	APIKey string `json:"apiKey"`
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Uniqueness is enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
