package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/wallet-go/apperror"
	"github.com/user/wallet-go/config"
)

// contextKey is a custom type for context keys to avoid collisions with keys
// defined in other packages.
type contextKey string

// userIDKey is the key under which the authenticated user's id is stored in
// the request context.
const userIDKey contextKey = "userID"

// Middleware creates the authorization gate. It extracts the token from the
// Authorization header, verifies it, and attaches the resolved user id to the
// request context. On missing header, malformed header, or verification
// failure it short-circuits with 401 and never invokes the downstream handler.
func Middleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	secret := []byte(cfg.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			// The Authorization header must be in the form "Bearer {token}".
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			userID, err := ParseToken(parts[1], secret)
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("invalid token", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithUserID(r.Context(), userID)))
		})
	}
}

// UserIDFromContext retrieves the authenticated user id set by Middleware.
// Returns 0 and false if no user id is present in the context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// NewContextWithUserID returns a child context carrying the given user id.
// Used by Middleware and by handler tests that bypass it.
func NewContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
