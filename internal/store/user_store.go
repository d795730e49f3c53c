package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// User represents a row in the users table. SnippetIDs and SavedSnippetIDs
// are denormalized JSON lists maintained exclusively by the consistency
// manager; nothing else writes them.
type User struct {
	ID              string     `db:"id"`
	FirstName       string     `db:"first_name"`
	LastName        string     `db:"last_name"`
	Email           string     `db:"email"`
	Username        string     `db:"username"`
	PasswordHash    string     `db:"password_hash"`
	Position        string     `db:"position"`
	CompanyName     string     `db:"company_name"`
	CompanyWebsite  string     `db:"company_website"`
	IsEmailVerified bool       `db:"is_email_verified"`
	Role            string     `db:"role"`
	IsActive        bool       `db:"is_active"`
	SnippetIDs      StringList `db:"snippet_ids"`
	SavedSnippetIDs StringList `db:"saved_snippet_ids"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

type UserStore struct {
	db *sqlx.DB
}

func NewUserStore(db *sqlx.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. Returns ErrDuplicate when the email or username
// is already taken.
func (s *UserStore) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	u.IsActive = true
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO users (id, first_name, last_name, email, username, password_hash,
			position, company_name, company_website, is_email_verified, role, is_active,
			snippet_ids, saved_snippet_ids, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), u.ID, u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash,
		u.Position, u.CompanyName, u.CompanyWebsite, u.IsEmailVerified, u.Role, u.IsActive,
		u.SnippetIDs, u.SavedSnippetIDs, u.CreatedAt, u.UpdatedAt)
	if isUniqueConstraintError(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID returns the user matching id, or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT * FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns the user matching email, or ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.db.Rebind(`SELECT * FROM users WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs returns the users matching the given ids, keyed by id. Used to
// attach owner details to snippet listings in one round trip.
func (s *UserStore) GetByIDs(ctx context.Context, ids []string) (map[string]*User, error) {
	out := make(map[string]*User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var users []*User
	if err := s.db.SelectContext(ctx, &users, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// UpdateProfile persists the editable profile fields and returns the updated
// record.
func (s *UserStore) UpdateProfile(ctx context.Context, u *User) (*User, error) {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		UPDATE users SET first_name = ?, last_name = ?, position = ?,
			company_name = ?, company_website = ?, updated_at = ?
		WHERE id = ?
	`), u.FirstName, u.LastName, u.Position, u.CompanyName, u.CompanyWebsite,
		time.Now().UTC(), u.ID)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, u.ID)
}

// SetSnippetIDs overwrites the denormalized owned-snippet id list.
func (s *UserStore) SetSnippetIDs(ctx context.Context, userID string, ids StringList) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE users SET snippet_ids = ?, updated_at = ? WHERE id = ?`),
		ids, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSavedSnippetIDs overwrites the denormalized saved-snippet id list.
func (s *UserStore) SetSavedSnippetIDs(ctx context.Context, userID string, ids StringList) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE users SET saved_snippet_ids = ?, updated_at = ? WHERE id = ?`),
		ids, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
