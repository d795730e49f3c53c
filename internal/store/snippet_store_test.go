package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hessennasser/codecache-manager-backend/internal/store"
	"github.com/hessennasser/codecache-manager-backend/internal/testutil"
)

func newSnippetTestEnv(t *testing.T) (*store.SnippetStore, *store.TagStore, *store.UserStore, string) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ss := store.NewSnippetStore(db)
	ts := store.NewTagStore(db)
	us := store.NewUserStore(db)

	u := &store.User{
		FirstName:    "Test",
		LastName:     "Owner",
		Email:        "owner@example.com",
		Username:     "owner",
		PasswordHash: "x",
	}
	if err := us.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return ss, ts, us, u.ID
}

func seedSnippet(t *testing.T, ss *store.SnippetStore, userID, title string, public bool) *store.Snippet {
	t.Helper()
	sn := &store.Snippet{
		Title:    title,
		Content:  "fmt.Println(\"hi\")",
		Language: "go",
		UserID:   userID,
		IsPublic: public,
	}
	if err := ss.Create(context.Background(), sn); err != nil {
		t.Fatalf("seed snippet %q: %v", title, err)
	}
	return sn
}

func TestSnippetStore_CreateAndGet(t *testing.T) {
	ss, _, _, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	sn := seedSnippet(t, ss, userID, "Hello World", true)
	if sn.ID == "" {
		t.Fatal("expected generated ID")
	}
	if sn.CreatedAt.IsZero() || sn.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be assigned")
	}

	got, err := ss.GetByID(ctx, sn.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Hello World" || got.UserID != userID {
		t.Errorf("got %+v, want title=Hello World user=%s", got, userID)
	}
	if got.ViewCount != 0 {
		t.Errorf("view_count = %d, want 0", got.ViewCount)
	}
}

func TestSnippetStore_GetByID_NotFound(t *testing.T) {
	ss, _, _, _ := newSnippetTestEnv(t)

	_, err := ss.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID = %v, want ErrNotFound", err)
	}
}

func TestSnippetStore_GetOwned_WrongOwner(t *testing.T) {
	ss, _, us, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	other := &store.User{Email: "other@example.com", Username: "other", PasswordHash: "x"}
	if err := us.Create(ctx, other); err != nil {
		t.Fatalf("seed other user: %v", err)
	}

	sn := seedSnippet(t, ss, userID, "Mine", true)

	if _, err := ss.GetOwned(ctx, sn.ID, userID); err != nil {
		t.Fatalf("GetOwned by owner: %v", err)
	}
	if _, err := ss.GetOwned(ctx, sn.ID, other.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetOwned by non-owner = %v, want ErrNotFound", err)
	}
}

func TestSnippetStore_Update(t *testing.T) {
	ss, _, _, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	sn := seedSnippet(t, ss, userID, "Before", true)
	sn.Title = "After"
	sn.IsPublic = false
	if err := ss.Update(ctx, sn); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := ss.GetByID(ctx, sn.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "After" || got.IsPublic {
		t.Errorf("got title=%q public=%v, want After/false", got.Title, got.IsPublic)
	}
}

func TestSnippetStore_Update_Missing(t *testing.T) {
	ss, _, _, userID := newSnippetTestEnv(t)

	sn := &store.Snippet{ID: "missing", Title: "x", Content: "y", Language: "go", UserID: userID}
	if err := ss.Update(context.Background(), sn); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestSnippetStore_IncrementViews(t *testing.T) {
	ss, _, _, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	sn := seedSnippet(t, ss, userID, "Counted", true)
	for i := 1; i <= 3; i++ {
		got, err := ss.IncrementViews(ctx, sn.ID)
		if err != nil {
			t.Fatalf("IncrementViews #%d: %v", i, err)
		}
		if got.ViewCount != i {
			t.Errorf("view_count after #%d = %d, want %d", i, got.ViewCount, i)
		}
	}

	if _, err := ss.IncrementViews(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("IncrementViews missing = %v, want ErrNotFound", err)
	}
}

func TestSnippetStore_Delete_CascadesLinks(t *testing.T) {
	ss, ts, _, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	sn := seedSnippet(t, ss, userID, "Tagged", true)
	tag, err := ts.Upsert(ctx, "go")
	if err != nil {
		t.Fatalf("Upsert tag: %v", err)
	}
	if err := ss.ReplaceTagLinks(ctx, sn.ID, []string{tag.ID}); err != nil {
		t.Fatalf("ReplaceTagLinks: %v", err)
	}

	if err := ss.Delete(ctx, sn.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ss.GetByID(ctx, sn.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetByID after delete = %v, want ErrNotFound", err)
	}

	tags, err := ss.TagsFor(ctx, sn.ID)
	if err != nil {
		t.Fatalf("TagsFor: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("expected tag links removed, got %d", len(tags))
	}
}

func TestSnippetStore_ReplaceTagLinks_Swap(t *testing.T) {
	ss, ts, _, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	sn := seedSnippet(t, ss, userID, "Tagged", true)
	golang, _ := ts.Upsert(ctx, "go")
	sql, _ := ts.Upsert(ctx, "sql")

	if err := ss.ReplaceTagLinks(ctx, sn.ID, []string{golang.ID}); err != nil {
		t.Fatalf("first ReplaceTagLinks: %v", err)
	}
	if err := ss.ReplaceTagLinks(ctx, sn.ID, []string{sql.ID}); err != nil {
		t.Fatalf("second ReplaceTagLinks: %v", err)
	}

	tags, err := ss.TagsFor(ctx, sn.ID)
	if err != nil {
		t.Fatalf("TagsFor: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "sql" {
		t.Errorf("tags = %+v, want exactly [sql]", tags)
	}
}

func TestSnippetStore_List_VisibilityAndPaging(t *testing.T) {
	ss, _, _, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedSnippet(t, ss, userID, "Public", true)
	}
	seedSnippet(t, ss, userID, "Private", false)

	rows, total, err := ss.List(ctx, store.SnippetFilter{}, 1, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5 (private excluded)", total)
	}
	if len(rows) != 2 {
		t.Errorf("page size = %d, want 2", len(rows))
	}

	rows, _, err = ss.List(ctx, store.SnippetFilter{}, 3, 2)
	if err != nil {
		t.Fatalf("List page 3: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("last page size = %d, want 1", len(rows))
	}
}

func TestSnippetStore_List_OwnerSeesPrivate(t *testing.T) {
	ss, _, _, userID := newSnippetTestEnv(t)
	ctx := context.Background()

	seedSnippet(t, ss, userID, "Public", true)
	seedSnippet(t, ss, userID, "Private", false)

	_, total, err := ss.List(ctx, store.SnippetFilter{OwnerID: userID}, 1, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("owner total = %d, want 2", total)
	}
}
