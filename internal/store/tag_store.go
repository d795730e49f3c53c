package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Tag represents a row in the tags table. Names are unique and stored in
// canonical lowercase form; usage_count tracks how many snippets reference
// the tag.
type Tag struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	UsageCount int       `db:"usage_count"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type TagStore struct {
	db *sqlx.DB
}

func NewTagStore(db *sqlx.DB) *TagStore {
	return &TagStore{db: db}
}

// Upsert creates a tag if it doesn't exist (by canonical name), or returns
// the existing one. The usage counter is untouched; counting is a separate
// atomic operation.
func (s *TagStore) Upsert(ctx context.Context, name string) (*Tag, error) {
	name = NormalizeTagName(name)

	var existing Tag
	err := s.db.GetContext(ctx, &existing, s.db.Rebind(`SELECT * FROM tags WHERE name = ?`), name)
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	id := uuid.New().String()
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO tags (id, name, usage_count, created_at, updated_at) VALUES (?, ?, 0, ?, ?)
	`), id, name, now, now)
	if err != nil {
		// Race: a concurrent request inserted the same name first. Re-fetch.
		if isUniqueConstraintError(err) {
			if err := s.db.GetContext(ctx, &existing,
				s.db.Rebind(`SELECT * FROM tags WHERE name = ?`), name); err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &Tag{ID: id, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

// GetByName returns the tag with the given canonical name, or ErrNotFound.
func (s *TagStore) GetByName(ctx context.Context, name string) (*Tag, error) {
	var t Tag
	err := s.db.GetContext(ctx, &t,
		s.db.Rebind(`SELECT * FROM tags WHERE name = ?`), NormalizeTagName(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// AdjustUsage moves the usage counter by delta with a single atomic UPDATE,
// never letting it drop below zero. Read-modify-write would under-count
// under concurrent writers.
func (s *TagStore) AdjustUsage(ctx context.Context, id string, delta int) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE tags
		SET usage_count = CASE WHEN usage_count + ? < 0 THEN 0 ELSE usage_count + ? END,
		    updated_at = ?
		WHERE id = ?
	`), delta, delta, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUnused removes every tag whose usage counter is zero and reports how
// many were garbage-collected.
func (s *TagStore) DeleteUnused(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE usage_count <= 0`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ListAll returns all tags ordered by usage count (most used first), then name.
func (s *TagStore) ListAll(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	err := s.db.SelectContext(ctx, &tags,
		`SELECT * FROM tags ORDER BY usage_count DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	return tags, nil
}
