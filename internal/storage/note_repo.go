package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stores.go -package=mocks skynotes/internal/storage NoteStore,SessionStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// GetAll returns every note, oldest first.
	GetAll(ctx context.Context) ([]*NoteRecord, error)
	// Get returns a note by ID.
	// Returns nil and ErrNotFound if not found.
	Get(ctx context.Context, id string) (*NoteRecord, error)
	// Upsert inserts a new note or replaces an existing one (last writer wins).
	Upsert(ctx context.Context, note *NoteRecord) error
	// Delete removes a note by ID. Deleting a missing note is not an error.
	Delete(ctx context.Context, id string) error
}

// NoteRepo provides methods for note operations.
// It implements the NoteStore interface.
type NoteRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB) *NoteRepo {
	return &NoteRepo{db: db, now: time.Now}
}

const noteColumns = `id, content, title, color, status, scheduled_for, posted_at, post_uri,
	post_history, failure_reason, custom_link_preview, image_data, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// GetAll returns every note ordered by creation time.
func (r *NoteRepo) GetAll(ctx context.Context) ([]*NoteRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var notes []*NoteRecord
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// Get returns a note by ID.
// Returns nil and ErrNotFound if not found.
func (r *NoteRepo) Get(ctx context.Context, id string) (*NoteRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// Upsert inserts a new note or replaces every mutable column of an existing one.
// A missing ID is generated and written back to the note, as are the timestamps.
func (r *NoteRepo) Upsert(ctx context.Context, note *NoteRecord) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := r.now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now
	if note.Status == "" {
		note.Status = StatusDraft
	}

	history := make([]int64, len(note.PostHistory))
	for i, t := range note.PostHistory {
		history[i] = t.UnixMilli()
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("failed to encode post history: %w", err)
	}

	images := note.ImageData
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to encode image data: %w", err)
	}

	var preview sql.NullString
	if note.CustomLinkPreview != nil {
		raw, err := json.Marshal(note.CustomLinkPreview)
		if err != nil {
			return fmt.Errorf("failed to encode link preview: %w", err)
		}
		preview = sql.NullString{String: string(raw), Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO notes (`+noteColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		 content = excluded.content, title = excluded.title, color = excluded.color,
		 status = excluded.status, scheduled_for = excluded.scheduled_for,
		 posted_at = excluded.posted_at, post_uri = excluded.post_uri,
		 post_history = excluded.post_history, failure_reason = excluded.failure_reason,
		 custom_link_preview = excluded.custom_link_preview, image_data = excluded.image_data,
		 updated_at = excluded.updated_at`,
		note.ID, note.Content, note.Title, note.Color, string(note.Status),
		toMillis(note.ScheduledFor), toMillis(note.PostedAt), note.PostURI,
		string(historyJSON), note.FailureReason, preview, string(imagesJSON),
		note.CreatedAt.UnixMilli(), note.UpdatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}

	return nil
}

// Delete removes a note by ID.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func scanNote(row rowScanner) (*NoteRecord, error) {
	var (
		note                   NoteRecord
		status                 string
		scheduledFor, postedAt sql.NullInt64
		historyJSON            string
		preview                sql.NullString
		imagesJSON             string
		createdAt, updatedAt   int64
	)

	err := row.Scan(&note.ID, &note.Content, &note.Title, &note.Color, &status,
		&scheduledFor, &postedAt, &note.PostURI, &historyJSON, &note.FailureReason,
		&preview, &imagesJSON, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan note: %w", err)
	}

	note.Status = NoteStatus(status)
	note.ScheduledFor = fromMillis(scheduledFor)
	note.PostedAt = fromMillis(postedAt)
	note.CreatedAt = time.UnixMilli(createdAt).UTC()
	note.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	var history []int64
	if err := json.Unmarshal([]byte(historyJSON), &history); err != nil {
		return nil, fmt.Errorf("failed to decode post history for note %s: %w", note.ID, err)
	}
	for _, ms := range history {
		note.PostHistory = append(note.PostHistory, time.UnixMilli(ms).UTC())
	}

	if err := json.Unmarshal([]byte(imagesJSON), &note.ImageData); err != nil {
		return nil, fmt.Errorf("failed to decode image data for note %s: %w", note.ID, err)
	}

	if preview.Valid && preview.String != "" {
		var p LinkPreview
		if err := json.Unmarshal([]byte(preview.String), &p); err != nil {
			return nil, fmt.Errorf("failed to decode link preview for note %s: %w", note.ID, err)
		}
		note.CustomLinkPreview = &p
	}

	return &note, nil
}
