package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/galleria-go/apperror"
	"github.com/user/galleria-go/config"
)

// ContextKey is a dedicated type for context keys so they cannot
// collide with keys from other packages.
type ContextKey string

// UserIDKey is the context key under which the middleware stores the
// authenticated user's ID.
const UserIDKey ContextKey = "userID"

// JWTMiddleware guards a route group with bearer-token authentication.
// It is a pure function of the Authorization header and the signing
// secret; no database access happens here, so a token for a deleted
// account still verifies until it expires.
//
// A missing header or a non-Bearer scheme is treated as "no token"
// (401). A token that fails signature, expiry or type checks is an
// authorization rejection (403).
func JWTMiddleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("authorization token required", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("authorization header format must be Bearer {token}", nil))
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				WriteError(w, r, apperror.NewUnauthorizedError("invalid or expired token", err))
				return
			}
			if claims.TokenType != TokenTypeSession || claims.UserID == 0 {
				WriteError(w, r, apperror.NewUnauthorizedError("invalid or expired token", nil))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the authenticated user ID stored by
// JWTMiddleware. The second return value is false when the request
// did not pass through the middleware.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}
