package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"skynotes/internal/contextutil"
)

var (
	bucketMirrorNotes = []byte("notes")
	bucketMirrorMeta  = []byte("meta")
	keySyncedAt       = []byte("synced_at")
)

// Mirror is a read-only projection of the note table in a bbolt file.
// Other execution contexts read it; only MirrorSync writes it.
type Mirror struct {
	db *bolt.DB
}

// OpenMirror opens (or creates) the mirror file at path.
func OpenMirror(path string) (*Mirror, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("mirror path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open mirror: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketMirrorNotes, bucketMirrorMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init mirror buckets: %w", err)
	}
	return &Mirror{db: db}, nil
}

// Close closes the mirror file.
func (m *Mirror) Close() error {
	if m == nil || m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Replace swaps the mirrored notes for the given set in one transaction,
// so readers see either the previous projection or the new one.
func (m *Mirror) Replace(notes []*NoteRecord, syncedAt time.Time) error {
	return m.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketMirrorNotes); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		bucket, err := tx.CreateBucket(bucketMirrorNotes)
		if err != nil {
			return err
		}
		for _, note := range notes {
			raw, err := json.Marshal(note)
			if err != nil {
				return fmt.Errorf("failed to encode note %s: %w", note.ID, err)
			}
			if err := bucket.Put([]byte(note.ID), raw); err != nil {
				return err
			}
		}
		meta := tx.Bucket(bucketMirrorMeta)
		return meta.Put(keySyncedAt, []byte(strconv.FormatInt(syncedAt.UnixMilli(), 10)))
	})
}

// Notes returns the mirrored notes ordered by ID.
func (m *Mirror) Notes() ([]*NoteRecord, error) {
	var notes []*NoteRecord
	err := m.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketMirrorNotes)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var note NoteRecord
			if err := json.Unmarshal(v, &note); err != nil {
				return err
			}
			notes = append(notes, &note)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read mirror: %w", err)
	}
	return notes, nil
}

// SyncedAt returns the time of the last successful sync, or the zero time.
func (m *Mirror) SyncedAt() (time.Time, error) {
	var syncedAt time.Time
	err := m.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketMirrorMeta).Get(keySyncedAt)
		if raw == nil {
			return nil
		}
		ms, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return err
		}
		syncedAt = time.UnixMilli(ms).UTC()
		return nil
	})
	return syncedAt, err
}

// MirrorSync projects the authoritative note store into a Mirror.
type MirrorSync struct {
	notes  NoteStore
	mirror *Mirror
	now    func() time.Time
	logger *slog.Logger
}

// NewMirrorSync creates a MirrorSync.
func NewMirrorSync(notes NoteStore, mirror *Mirror) *MirrorSync {
	return &MirrorSync{
		notes:  notes,
		mirror: mirror,
		now:    time.Now,
		logger: slog.Default(),
	}
}

// Sync copies every note into the mirror and returns how many were written.
// Failures are logged and returned; the authoritative store is never modified.
func (s *MirrorSync) Sync(ctx context.Context) (int, error) {
	logger := contextutil.LoggerFromContextOr(ctx, s.logger)

	notes, err := s.notes.GetAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "mirror sync failed to read notes", "error", err)
		return 0, fmt.Errorf("failed to read notes for mirror: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.mirror.Replace(notes, s.now()); err != nil {
		logger.ErrorContext(ctx, "mirror sync failed to write", "error", err, "notes", len(notes))
		return 0, fmt.Errorf("failed to write mirror: %w", err)
	}

	logger.DebugContext(ctx, "mirror synced", "notes", len(notes))
	return len(notes), nil
}
