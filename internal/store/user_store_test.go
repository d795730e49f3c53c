package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hessennasser/codecache-manager-backend/internal/store"
	"github.com/hessennasser/codecache-manager-backend/internal/testutil"
)

func newUserTestEnv(t *testing.T) *store.UserStore {
	t.Helper()
	db := testutil.NewTestDB(t)
	return store.NewUserStore(db)
}

func TestUserStore_CreateAndGet(t *testing.T) {
	us := newUserTestEnv(t)
	ctx := context.Background()

	u := &store.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Username:     "ada",
		PasswordHash: "hash",
	}
	if err := us.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated ID")
	}
	if u.Role != "user" {
		t.Errorf("role = %q, want user", u.Role)
	}
	if !u.IsActive {
		t.Error("expected new users to be active")
	}

	got, err := us.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != u.ID || got.Username != "ada" {
		t.Errorf("got %+v, want the created user", got)
	}
	if len(got.SnippetIDs) != 0 || len(got.SavedSnippetIDs) != 0 {
		t.Errorf("expected empty id lists, got %v / %v", got.SnippetIDs, got.SavedSnippetIDs)
	}
}

func TestUserStore_Create_DuplicateEmail(t *testing.T) {
	us := newUserTestEnv(t)
	ctx := context.Background()

	first := &store.User{Email: "dup@example.com", Username: "first", PasswordHash: "x"}
	if err := us.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	second := &store.User{Email: "dup@example.com", Username: "second", PasswordHash: "x"}
	if err := us.Create(ctx, second); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("Create duplicate email = %v, want ErrDuplicate", err)
	}
}

func TestUserStore_Create_DuplicateUsername(t *testing.T) {
	us := newUserTestEnv(t)
	ctx := context.Background()

	first := &store.User{Email: "one@example.com", Username: "same", PasswordHash: "x"}
	if err := us.Create(ctx, first); err != nil {
		t.Fatalf("Create first: %v", err)
	}

	second := &store.User{Email: "two@example.com", Username: "same", PasswordHash: "x"}
	if err := us.Create(ctx, second); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("Create duplicate username = %v, want ErrDuplicate", err)
	}
}

func TestUserStore_GetByID_NotFound(t *testing.T) {
	us := newUserTestEnv(t)

	_, err := us.GetByID(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID = %v, want ErrNotFound", err)
	}
}

func TestUserStore_GetByIDs(t *testing.T) {
	us := newUserTestEnv(t)
	ctx := context.Background()

	a := &store.User{Email: "a@example.com", Username: "a", PasswordHash: "x"}
	b := &store.User{Email: "b@example.com", Username: "b", PasswordHash: "x"}
	for _, u := range []*store.User{a, b} {
		if err := us.Create(ctx, u); err != nil {
			t.Fatalf("Create %s: %v", u.Username, err)
		}
	}

	got, err := us.GetByIDs(ctx, []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 2 || got[a.ID] == nil || got[b.ID] == nil {
		t.Errorf("got %d users, want a and b", len(got))
	}

	empty, err := us.GetByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetByIDs empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty map, got %v", empty)
	}
}

func TestUserStore_UpdateProfile(t *testing.T) {
	us := newUserTestEnv(t)
	ctx := context.Background()

	u := &store.User{Email: "p@example.com", Username: "p", PasswordHash: "x"}
	if err := us.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u.FirstName = "Grace"
	u.Position = "Engineer"
	u.CompanyName = "Navy"
	updated, err := us.UpdateProfile(ctx, u)
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Grace" || updated.Position != "Engineer" || updated.CompanyName != "Navy" {
		t.Errorf("profile not persisted: %+v", updated)
	}
}

func TestUserStore_SetSnippetIDs_RoundTrip(t *testing.T) {
	us := newUserTestEnv(t)
	ctx := context.Background()

	u := &store.User{Email: "ids@example.com", Username: "ids", PasswordHash: "x"}
	if err := us.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ids := store.StringList{"s1", "s2"}
	if err := us.SetSnippetIDs(ctx, u.ID, ids); err != nil {
		t.Fatalf("SetSnippetIDs: %v", err)
	}
	if err := us.SetSavedSnippetIDs(ctx, u.ID, store.StringList{"s3"}); err != nil {
		t.Fatalf("SetSavedSnippetIDs: %v", err)
	}

	got, err := us.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.SnippetIDs) != 2 || got.SnippetIDs[0] != "s1" || got.SnippetIDs[1] != "s2" {
		t.Errorf("snippet_ids = %v, want [s1 s2]", got.SnippetIDs)
	}
	if len(got.SavedSnippetIDs) != 1 || got.SavedSnippetIDs[0] != "s3" {
		t.Errorf("saved_snippet_ids = %v, want [s3]", got.SavedSnippetIDs)
	}

	if err := us.SetSnippetIDs(ctx, "missing", ids); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SetSnippetIDs missing user = %v, want ErrNotFound", err)
	}
}
