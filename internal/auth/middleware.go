package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

type contextKey struct{}

var userContextKey contextKey

// UserFromContext returns the authenticated user set by the middleware, or
// nil on unauthenticated requests.
func UserFromContext(ctx context.Context) *store.User {
	u, _ := ctx.Value(userContextKey).(*store.User)
	return u
}

// ContextWithUser injects a user into ctx. Exported for handler tests.
func ContextWithUser(ctx context.Context, u *store.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

// Middleware authenticates requests via "Authorization: Bearer <jwt>" and
// loads the token's subject from the user store into the request context.
type Middleware struct {
	tokens *TokenService
	users  *store.UserStore
}

func NewMiddleware(tokens *TokenService, users *store.UserStore) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Authenticate rejects requests without a valid bearer token. Deactivated
// accounts are treated the same as invalid tokens.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			writeUnauthorized(w)
			return
		}

		userID, err := m.tokens.Validate(tokenString)
		if err != nil {
			writeUnauthorized(w)
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil || !user.IsActive {
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
