package handlers

import (
	"context"
	"net/http"
	"strings"

	"location-service/models"
)

// APIKeyHeader carries the caller's API key. "Authorization: Bearer <key>" is also accepted.
const APIKeyHeader = "X-API-Key"

// Authenticator resolves an API key to its owner.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (*models.User, error)
}

// Gate only lets requests through once the presented API key resolves to a user.
// The resolved user is the sole identity downstream handlers may act on.
func Gate(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			user, err := authn.Authenticate(ctx, presentedKey(r))
			if err != nil {
				writeError(ctx, w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userKey, user)))
		})
	}
}

// UserFromContext returns the user resolved by Gate, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

func presentedKey(r *http.Request) string {
	if key := r.Header.Get(APIKeyHeader); key != "" {
		return key
	}
	authz := r.Header.Get("Authorization")
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return authz[7:]
	}
	return ""
}
