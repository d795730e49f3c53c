package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hessennasser/codecache-manager-backend/internal/auth"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
	"github.com/hessennasser/codecache-manager-backend/internal/testutil"
)

func newMiddlewareEnv(t *testing.T) (*auth.Middleware, *auth.TokenService, *store.UserStore, *store.User, *sqlx.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	users := store.NewUserStore(db)

	tokens, err := auth.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	u := &store.User{Email: "mw@example.com", Username: "mw", PasswordHash: "x"}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return auth.NewMiddleware(tokens, users), tokens, users, u, db
}

func TestMiddleware_ValidToken(t *testing.T) {
	mw, tokens, _, u, _ := newMiddlewareEnv(t)

	token, err := tokens.Generate(u.ID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var seen *store.User
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.UserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen == nil || seen.ID != u.ID {
		t.Errorf("context user = %+v, want %s", seen, u.ID)
	}
}

func TestMiddleware_RejectsBadCredentials(t *testing.T) {
	mw, tokens, users, _, db := newMiddlewareEnv(t)
	ctx := context.Background()

	unknownToken, err := tokens.Generate("00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Deactivate a second user and mint a token for them.
	inactive := &store.User{Email: "inactive@example.com", Username: "inactive", PasswordHash: "x"}
	if err := users.Create(ctx, inactive); err != nil {
		t.Fatalf("seed inactive user: %v", err)
	}
	if _, err := db.Exec(`UPDATE users SET is_active = 0 WHERE id = ?`, inactive.ID); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}
	inactiveToken, err := tokens.Generate(inactive.ID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer garbage"},
		{"unknown subject", "Bearer " + unknownToken},
		{"deactivated account", "Bearer " + inactiveToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}
