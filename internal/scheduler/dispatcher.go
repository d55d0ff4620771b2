// Package scheduler publishes due notes. Each tick scans the note store,
// submits every scheduled note whose time has passed and records the outcome
// on the note. All durable state lives in the store, so a restarted process
// picks up where the last one stopped.
package scheduler

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_scheduler.go -package=mocks skynotes/internal/scheduler SessionProvider,ContentProcessor,PostSubmitter,MirrorSyncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"skynotes/internal/content"
	"skynotes/internal/contextutil"
	"skynotes/internal/publisher"
	"skynotes/internal/session"
	"skynotes/internal/storage"
)

const (
	// ReasonNoSession is recorded when no credential is stored at publish time.
	ReasonNoSession = "no session"
	// ReasonMissingTime is recorded for a scheduled note without a time.
	ReasonMissingTime = "scheduled note has no scheduled time"
)

// SessionProvider supplies the credential used for publishing.
type SessionProvider interface {
	Current(ctx context.Context) (*storage.SessionRecord, error)
	Refresh(ctx context.Context, s *storage.SessionRecord) (*storage.SessionRecord, error)
}

// ContentProcessor turns a note into post content.
type ContentProcessor interface {
	Process(ctx context.Context, note *storage.NoteRecord) (content.Content, error)
}

// PostSubmitter creates the post.
type PostSubmitter interface {
	Submit(ctx context.Context, sess *storage.SessionRecord, text string, link *storage.LinkPreview, images []content.Image) publisher.Result
}

// MirrorSyncer refreshes the read-only note mirror.
type MirrorSyncer interface {
	Sync(ctx context.Context) (int, error)
}

// Dispatcher runs the publish pipeline for due notes and for "post now".
// Tick and PublishNow never run concurrently.
type Dispatcher struct {
	notes     storage.NoteStore
	sessions  SessionProvider
	content   ContentProcessor
	submitter PostSubmitter
	mirror    MirrorSyncer

	mu     sync.Mutex
	now    func() time.Time
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher. mirror may be nil.
func NewDispatcher(
	notes storage.NoteStore,
	sessions SessionProvider,
	processor ContentProcessor,
	submitter PostSubmitter,
	mirror MirrorSyncer,
) *Dispatcher {
	return &Dispatcher{
		notes:     notes,
		sessions:  sessions,
		content:   processor,
		submitter: submitter,
		mirror:    mirror,
		now:       time.Now,
		logger:    slog.Default(),
	}
}

// Run ticks immediately and then every interval until ctx is cancelled.
// A tick in progress when ctx is cancelled runs to completion.
func (d *Dispatcher) Run(ctx context.Context, interval time.Duration) {
	logger := contextutil.LoggerFromContextOr(ctx, d.logger)
	logger.InfoContext(ctx, "scheduler started", "interval", interval)

	d.runTick(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "scheduler stopped")
			return
		case <-ticker.C:
			d.runTick(ctx)
		}
	}
}

func (d *Dispatcher) runTick(ctx context.Context) {
	logger := contextutil.LoggerFromContextOr(ctx, d.logger)

	stats, err := d.Tick(context.WithoutCancel(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "tick failed", "error", err)
		return
	}
	if stats.Due > 0 {
		logger.InfoContext(ctx, "tick completed", stats.LogAttrs()...)
	}
}

// Tick publishes every due note once. Per-note failures are recorded on the
// note and never stop the tick; the returned error is only for a failed scan.
func (d *Dispatcher) Tick(ctx context.Context) (TickStats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	logger := contextutil.LoggerFromContextOr(ctx, d.logger)
	start := d.now()
	stats := TickStats{StartedAt: start}

	all, err := d.notes.GetAll(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list notes: %w", err)
	}

	var due []string
	for _, n := range all {
		if n.IsDue(start) {
			due = append(due, n.ID)
		}
	}
	stats.Due = len(due)

	for _, id := range due {
		// Re-read so an edit that landed after the scan is respected.
		note, err := d.notes.Get(ctx, id)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && !note.IsDue(start)) {
			logger.InfoContext(ctx, "note no longer due, skipping", "note_id", id)
			stats.Skipped++
			continue
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to load note", "note_id", id, "error", err)
			stats.StoreErrors++
			continue
		}

		if d.deliver(ctx, note, start) {
			stats.Published++
		} else {
			stats.Failed++
		}

		if err := d.notes.Upsert(ctx, note); err != nil {
			logger.ErrorContext(ctx, "failed to save note", "note_id", id, "status", note.Status, "error", err)
			stats.StoreErrors++
		}
	}

	stats.Duration = d.now().Sub(start)
	if stats.Published+stats.Failed > 0 {
		d.syncMirror(ctx)
	}
	return stats, nil
}

// PublishNow runs the publish pipeline for one note regardless of its status.
// The returned note carries the outcome; the error is only for store failures.
func (d *Dispatcher) PublishNow(ctx context.Context, id string) (*storage.NoteRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	note, err := d.notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	d.deliver(ctx, note, d.now())

	if err := d.notes.Upsert(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to save note: %w", err)
	}
	d.syncMirror(ctx)
	return note, nil
}

// deliver publishes note and records the outcome on it. It reports success.
func (d *Dispatcher) deliver(ctx context.Context, note *storage.NoteRecord, now time.Time) (ok bool) {
	logger := contextutil.LoggerFromContextOr(ctx, d.logger).With("note_id", note.ID)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "panic while publishing note", "panic", r)
			markFailed(note, fmt.Sprintf("internal error: %v", r))
			ok = false
		}
	}()

	if note.Status == storage.StatusScheduled && note.ScheduledFor == nil {
		logger.WarnContext(ctx, "malformed scheduled note")
		markFailed(note, ReasonMissingTime)
		return false
	}

	sess, err := d.sessions.Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		logger.WarnContext(ctx, "cannot publish without a session")
		markFailed(note, ReasonNoSession)
		return false
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load session", "error", err)
		markFailed(note, fmt.Sprintf("session unavailable: %v", err))
		return false
	}

	if sess.RefreshToken != "" {
		refreshed, err := d.sessions.Refresh(ctx, sess)
		if err != nil {
			logger.WarnContext(ctx, "session refresh failed, using current token", "error", err)
		} else {
			sess = refreshed
		}
	}

	c, err := d.content.Process(ctx, note)
	if err != nil {
		logger.WarnContext(ctx, "invalid note content", "error", err)
		markFailed(note, fmt.Sprintf("invalid content: %v", err))
		return false
	}

	result := d.submitter.Submit(ctx, sess, c.Text, c.Link, c.Images)
	if !result.OK {
		logger.WarnContext(ctx, "publish failed", "reason", result.ErrorDetail)
		markFailed(note, result.ErrorDetail)
		return false
	}

	note.Status = storage.StatusPublished
	posted := now
	note.PostedAt = &posted
	note.PostURI = result.PostURI
	note.PostHistory = append(note.PostHistory, now)
	note.FailureReason = ""

	logger.InfoContext(ctx, "note published", "uri", result.PostURI, "publish_count", len(note.PostHistory))
	return true
}

func (d *Dispatcher) syncMirror(ctx context.Context) {
	if d.mirror == nil {
		return
	}
	// Sync logs its own failures; the store stays authoritative.
	_, _ = d.mirror.Sync(ctx)
}

// markFailed leaves PostedAt, PostURI, PostHistory and ScheduledFor as they were.
func markFailed(note *storage.NoteRecord, reason string) {
	if reason == "" {
		reason = "unknown error"
	}
	note.Status = storage.StatusFailed
	note.FailureReason = reason
}
