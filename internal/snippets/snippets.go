// Package snippets holds the snippet domain logic: the service orchestrating
// snippet CRUD and listings, the tag registry keeping usage counts honest,
// the pagination engine, and the consistency manager that mirrors snippet
// ids onto user records across store boundaries.
package snippets

import (
	"context"

	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// SnippetStore is the slice of the persistence layer the service needs for
// snippet rows and their tag links.
type SnippetStore interface {
	Create(ctx context.Context, sn *store.Snippet) error
	GetByID(ctx context.Context, id string) (*store.Snippet, error)
	GetOwned(ctx context.Context, id, userID string) (*store.Snippet, error)
	Update(ctx context.Context, sn *store.Snippet) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (*store.Snippet, error)
	List(ctx context.Context, f store.SnippetFilter, page, limit int) ([]*store.Snippet, int, error)
	ListTop(ctx context.Context, sort store.Sort, limit int) ([]*store.Snippet, error)
	ReplaceTagLinks(ctx context.Context, snippetID string, tagIDs []string) error
	TagsFor(ctx context.Context, snippetID string) ([]*store.Tag, error)
}

// TagStore is the persistence surface consumed by the tag registry.
type TagStore interface {
	Upsert(ctx context.Context, name string) (*store.Tag, error)
	AdjustUsage(ctx context.Context, id string, delta int) error
	DeleteUnused(ctx context.Context) (int64, error)
}

// UserStore covers user lookups and the denormalized id lists. Only the
// consistency manager writes the lists.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*store.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*store.User, error)
	SetSnippetIDs(ctx context.Context, userID string, ids store.StringList) error
	SetSavedSnippetIDs(ctx context.Context, userID string, ids store.StringList) error
}

// SavedStore is the relational saved-snippet join.
type SavedStore interface {
	Save(ctx context.Context, userID, snippetID string) error
	Unsave(ctx context.Context, userID, snippetID string) error
	IsSaved(ctx context.Context, userID, snippetID string) (bool, error)
	ListIDs(ctx context.Context, userID string) ([]string, error)
}
