package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hessennasser/codecache-manager-backend/internal/api"
	"github.com/hessennasser/codecache-manager-backend/internal/auth"
	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
	"github.com/hessennasser/codecache-manager-backend/internal/testutil"
)

const testPassword = "sup3r-secret-pw"

// testEnv holds all stores and helpers needed for API integration tests.
type testEnv struct {
	Router    http.Handler
	Users     *store.UserStore
	Tags      *store.TagStore
	Snippets  *snippets.Service
	Tokens    *auth.TokenService
	Passwords *auth.PasswordService
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and wires up the full API router with real stores.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	users := store.NewUserStore(db)
	tags := store.NewTagStore(db)
	snips := store.NewSnippetStore(db)
	saved := store.NewSavedSnippetStore(db)

	tokens, err := auth.NewTokenService("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	passwords := auth.NewPasswordService(bcrypt.MinCost)
	svc := snippets.NewService(snips, tags, users, saved)

	router := api.NewRouter(api.Deps{
		AuthMiddleware:  auth.NewMiddleware(tokens, users),
		TokenService:    tokens,
		PasswordService: passwords,
		UserStore:       users,
		TagStore:        tags,
		SnippetService:  svc,
	})

	return &testEnv{
		Router:    router,
		Users:     users,
		Tags:      tags,
		Snippets:  svc,
		Tokens:    tokens,
		Passwords: passwords,
	}
}

// seedUser creates an account with the shared test password and returns it.
func seedUser(t *testing.T, env *testEnv, email, username string) *store.User {
	t.Helper()
	hash, err := env.Passwords.Hash(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &store.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}
	if err := env.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// seedToken mints a real access token for a user.
func seedToken(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	token, err := env.Tokens.Generate(userID)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// seedSnippet creates a snippet through the service.
func seedSnippet(t *testing.T, env *testEnv, userID string, in snippets.CreateInput) *snippets.Detail {
	t.Helper()
	detail, err := env.Snippets.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("seed snippet: %v", err)
	}
	return detail
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
