package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/salesflow/crm/internal/domain"
	"github.com/salesflow/crm/internal/service"
)

// TokenVerifier is the slice of the auth service the middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) (*service.TokenClaims, error)
	AuthenticateUserFromContext(ctx context.Context) (*domain.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth accepts first-party PASETO tokens and Supabase access tokens.
// The resolved user id is stored in the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			writeError(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := m.verifier.VerifyToken(parts[1])
		if err != nil {
			writeError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := service.ContextWithClaims(r.Context(), claims)
		user, err := m.verifier.AuthenticateUserFromContext(ctx)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionExpired):
				writeError(w, "Session expired", http.StatusUnauthorized)
			case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
				writeError(w, "Unauthorized", http.StatusUnauthorized)
			default:
				writeError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		ctx = context.WithValue(ctx, domain.UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
