package handlers

import (
	"context"
	"net/http"

	"location-service/models"

	"go.uber.org/zap"
)

// AccountService registers users and logs them in with a password.
type AccountService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

// AuthHandler serves the unauthenticated credential endpoints.
type AuthHandler struct {
	accounts AccountService
}

func NewAuthHandler(accounts AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles POST /api/register - creates an account and returns its API key
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logRequest(ctx, "info", "Register request")

	var req models.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	user, err := h.accounts.Register(ctx, req.Email, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "User registered", zap.String("user_id", user.ID))
	writeJSON(w, http.StatusCreated, models.APIKeyResponse{APIKey: user.APIKey})
}

// Login handles POST /api/login - verifies the password and returns the stored API key
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logRequest(ctx, "info", "Login request")

	var req models.Credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	user, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	logRequest(ctx, "info", "Login successful", zap.String("user_id", user.ID))
	writeJSON(w, http.StatusOK, models.APIKeyResponse{APIKey: user.APIKey})
}
