// Package middleware resolves the caller's identity for the request layer.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// UserIDKey is the echo context key holding the resolved user id.
const UserIDKey = "userID"

// Resolver maps an incoming request to an internal user id.
type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (userID string, ok bool)
}

// Identity stores the resolved user id under UserIDKey. Requests without a
// usable identity pass through untouched; the operations they reach report
// the missing identity themselves.
func Identity(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, ok := resolver.Resolve(c.Request().Context(), c.Request()); ok && userID != "" {
				c.Set(UserIDKey, userID)
			}
			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
