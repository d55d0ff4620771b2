package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultSessionName is the name of the credential row used for Bluesky.
const DefaultSessionName = "bluesky"

// SessionStore persists the single named credential record.
type SessionStore interface {
	// Get returns the stored session.
	// Returns nil and ErrNotFound if no session is stored.
	Get(ctx context.Context) (*SessionRecord, error)
	// Save replaces the stored session.
	Save(ctx context.Context, session *SessionRecord) error
	// Delete removes the stored session.
	Delete(ctx context.Context) error
}

// SessionRepo implements SessionStore on top of the sessions table.
type SessionRepo struct {
	db   *sql.DB
	name string
}

// NewSessionRepo creates a new SessionRepo for the named credential.
func NewSessionRepo(db *sql.DB, name string) *SessionRepo {
	if name == "" {
		name = DefaultSessionName
	}
	return &SessionRepo{db: db, name: name}
}

// Get returns the stored session.
func (r *SessionRepo) Get(ctx context.Context) (*SessionRecord, error) {
	var s SessionRecord
	var updatedAt int64

	err := r.db.QueryRowContext(ctx,
		"SELECT access_token, refresh_token, account_id, account_handle, updated_at FROM sessions WHERE name = ?",
		r.name,
	).Scan(&s.AccessToken, &s.RefreshToken, &s.AccountID, &s.AccountHandle, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	s.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &s, nil
}

// Save replaces the stored session in a single statement.
func (r *SessionRepo) Save(ctx context.Context, s *SessionRecord) error {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (name, access_token, refresh_token, account_id, account_handle, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
		 access_token = excluded.access_token, refresh_token = excluded.refresh_token,
		 account_id = excluded.account_id, account_handle = excluded.account_handle,
		 updated_at = excluded.updated_at`,
		r.name, s.AccessToken, s.RefreshToken, s.AccountID, s.AccountHandle, s.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the stored session.
func (r *SessionRepo) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE name = ?", r.name); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
