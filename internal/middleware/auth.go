package middleware

import (
	"net/http"
	"strings"

	"github.com/linkup-social/linkup/internal/handlers"
	"github.com/linkup-social/linkup/internal/services"
)

type AuthMiddleware struct {
	tokens services.TokenVerifier
}

func NewAuthMiddleware(tokens services.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies a bearer access token and adds the user id to the
// context if valid. Does not reject unauthenticated requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		payload, err := m.tokens.VerifyAccessToken(token)
		if err != nil {
			// Invalid token, continue without user
			next.ServeHTTP(w, r)
			return
		}

		ctx := handlers.SetUserIDInContext(r.Context(), payload.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects unauthenticated requests with 401.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := handlers.GetUserIDFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
