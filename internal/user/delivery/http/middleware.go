package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/starwars-blog/internal/server"
	"github.com/tair/starwars-blog/pkg/auth"
	"github.com/tair/starwars-blog/pkg/logger"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
)

// IdentityMiddleware resolves the acting user of a request
type IdentityMiddleware func(http.Handler) http.Handler

// NewIdentityMiddleware validates the bearer token and stores its user id in
// the request context. Requests without an Authorization header act as
// defaultUserID when it is non-zero and are rejected otherwise.
func NewIdentityMiddleware(defaultUserID uint) IdentityMiddleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if defaultUserID == 0 {
					server.RespondError(w, http.StatusUnauthorized, "Authorization header required")
					return
				}
				ctx := context.WithValue(r.Context(), UserIDKey, defaultUserID)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				server.RespondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := auth.ValidateToken(parts[1])
			if err != nil {
				logger.Debug(r.Context()).Err(err).Msg("Rejected bearer token")
				server.RespondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the user id stored by the identity middleware
func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok && userID != 0
}
