package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Snippet represents a row in the snippets table.
type Snippet struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Content     string    `db:"content"`
	Language    string    `db:"language"`
	UserID      string    `db:"user_id"`
	IsPublic    bool      `db:"is_public"`
	ViewCount   int       `db:"view_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// SnippetStore is the sqlx-backed store for snippets and their tag links.
// Listing queries are composed with goqu so the same filter code emits
// correct SQL for every supported driver.
type SnippetStore struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

func NewSnippetStore(db *sqlx.DB) *SnippetStore {
	dialect, err := GoquDialect(db.DriverName())
	if err != nil {
		// Driver names are fixed at wiring time; an unknown one is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return &SnippetStore{db: db, dialect: dialect}
}

// Create inserts a new snippet row. The caller supplies normalized fields;
// ID and timestamps are assigned here.
func (s *SnippetStore) Create(ctx context.Context, sn *Snippet) error {
	if sn.ID == "" {
		sn.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	sn.CreatedAt = now
	sn.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO snippets (id, title, description, content, language, user_id, is_public, view_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), sn.ID, sn.Title, sn.Description, sn.Content, sn.Language, sn.UserID, sn.IsPublic, sn.ViewCount, sn.CreatedAt, sn.UpdatedAt)
	return err
}

// GetByID returns the snippet matching id, or ErrNotFound.
func (s *SnippetStore) GetByID(ctx context.Context, id string) (*Snippet, error) {
	var sn Snippet
	err := s.db.GetContext(ctx, &sn, s.db.Rebind(`SELECT * FROM snippets WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sn, nil
}

// GetOwned returns the snippet only if it exists and belongs to userID.
// A wrong owner is indistinguishable from a missing snippet on purpose.
func (s *SnippetStore) GetOwned(ctx context.Context, id, userID string) (*Snippet, error) {
	var sn Snippet
	err := s.db.GetContext(ctx, &sn,
		s.db.Rebind(`SELECT * FROM snippets WHERE id = ? AND user_id = ?`), id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sn, nil
}

// Update persists the mutable fields of a snippet and bumps updated_at.
func (s *SnippetStore) Update(ctx context.Context, sn *Snippet) error {
	sn.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE snippets SET title = ?, description = ?, content = ?, language = ?, is_public = ?, updated_at = ?
		WHERE id = ?
	`), sn.Title, sn.Description, sn.Content, sn.Language, sn.IsPublic, sn.UpdatedAt, sn.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a snippet by ID. CASCADE deletes handle snippet_tags and
// saved_snippets rows.
func (s *SnippetStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM snippets WHERE id = ?`), id)
	return err
}

// IncrementViews bumps the view counter with a single atomic UPDATE; the
// returned snippet reflects the new count.
func (s *SnippetStore) IncrementViews(ctx context.Context, id string) (*Snippet, error) {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE snippets SET view_count = view_count + 1 WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// List returns the page of snippets matching f plus the total match count.
// page and limit must be positive; offset is (page-1)*limit.
func (s *SnippetStore) List(ctx context.Context, f SnippetFilter, page, limit int) ([]*Snippet, int, error) {
	base := buildSnippetQuery(s.dialect, f)

	countSQL, countArgs, err := base.Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := s.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	ds := applyOrder(base.Select(goqu.T("snippets").All()), f).
		Limit(uint(limit)).
		Offset(uint((page - 1) * limit))
	querySQL, queryArgs, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, 0, err
	}

	var snippets []*Snippet
	if err := s.db.SelectContext(ctx, &snippets, querySQL, queryArgs...); err != nil {
		return nil, 0, err
	}
	return snippets, total, nil
}

// ListTop returns up to limit public snippets under the given sort, with no
// paging metadata. Backs the popular and recent listings.
func (s *SnippetStore) ListTop(ctx context.Context, sort Sort, limit int) ([]*Snippet, error) {
	snippets, _, err := s.List(ctx, SnippetFilter{Sort: sort}, 1, limit)
	return snippets, err
}

// ReplaceTagLinks swaps the snippet_tags rows for a snippet to exactly tagIDs.
func (s *SnippetStore) ReplaceTagLinks(ctx context.Context, snippetID string, tagIDs []string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		s.db.Rebind(`DELETE FROM snippet_tags WHERE snippet_id = ?`), snippetID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			s.db.Rebind(`INSERT INTO snippet_tags (snippet_id, tag_id) VALUES (?, ?)`),
			snippetID, tagID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// TagsFor returns the tags linked to a snippet, ordered by name.
func (s *SnippetStore) TagsFor(ctx context.Context, snippetID string) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.SelectContext(ctx, &tags, s.db.Rebind(`
		SELECT t.* FROM tags t
		INNER JOIN snippet_tags st ON st.tag_id = t.id
		WHERE st.snippet_id = ?
		ORDER BY t.name ASC
	`), snippetID)
	if err != nil {
		return nil, err
	}
	return tags, nil
}
