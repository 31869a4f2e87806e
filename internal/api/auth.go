// internal/api/auth.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"fintrack/internal/api/handler"
	"fintrack/internal/api/types"
)

// AuthMiddleware validates the Bearer token issued by the external auth
// provider and stores its subject (the external user identity) in the
// request context. Business logic never reads ambient auth state; handlers
// resolve the subject to an internal user once and pass it down.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			externalID, err := externalIDFromRequest(r, secret)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(types.Fail("Unauthorized"))
				return
			}

			r = r.WithContext(handler.WithExternalID(r.Context(), externalID))
			next.ServeHTTP(w, r)
		})
	}
}

// externalIDFromRequest extracts and validates the JWT from the request,
// returning the subject claim.
func externalIDFromRequest(r *http.Request, secret string) (string, error) {
	tokenString := r.Header.Get("Authorization")
	if tokenString == "" {
		return "", fmt.Errorf("missing token")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("missing subject claim")
	}
	return subject, nil
}
