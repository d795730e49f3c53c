package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// SavedSnippet represents a row in the saved_snippets join table: one user
// bookmarking one snippet at a point in time. Rows disappear automatically
// when either side is deleted (ON DELETE CASCADE).
type SavedSnippet struct {
	UserID    string    `db:"user_id"`
	SnippetID string    `db:"snippet_id"`
	SavedAt   time.Time `db:"saved_at"`
}

type SavedSnippetStore struct {
	db *sqlx.DB
}

func NewSavedSnippetStore(db *sqlx.DB) *SavedSnippetStore {
	return &SavedSnippetStore{db: db}
}

// Save records the bookmark. Saving an already-saved snippet is a no-op, so
// the operation is idempotent.
func (s *SavedSnippetStore) Save(ctx context.Context, userID, snippetID string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO saved_snippets (user_id, snippet_id, saved_at) VALUES (?, ?, ?)
	`), userID, snippetID, time.Now().UTC())
	if isUniqueConstraintError(err) {
		return nil
	}
	return err
}

// Unsave removes the bookmark. Removing a bookmark that does not exist is a
// no-op.
func (s *SavedSnippetStore) Unsave(ctx context.Context, userID, snippetID string) error {
	_, err := s.db.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM saved_snippets WHERE user_id = ? AND snippet_id = ?`),
		userID, snippetID)
	return err
}

// IsSaved reports whether the user has bookmarked the snippet.
func (s *SavedSnippetStore) IsSaved(ctx context.Context, userID, snippetID string) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		s.db.Rebind(`SELECT COUNT(*) FROM saved_snippets WHERE user_id = ? AND snippet_id = ?`),
		userID, snippetID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListIDs returns the ids of every snippet the user has saved, most recent
// save first.
func (s *SavedSnippetStore) ListIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.SelectContext(ctx, &ids, s.db.Rebind(`
		SELECT snippet_id FROM saved_snippets WHERE user_id = ? ORDER BY saved_at DESC
	`), userID)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
