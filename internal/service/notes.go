package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_dependencies.go -package=mocks skynotes/internal/service Publisher,MirrorReader,MirrorSyncer,SessionManager
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_services.go -package=mocks -mock_names=NoteService=MockNoteService,SessionService=MockSessionService skynotes/internal/service NoteService,SessionService

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"skynotes/internal/content"
	"skynotes/internal/contextutil"
	"skynotes/internal/scheduler"
	"skynotes/internal/storage"
)

// Note content formats accepted on create and update.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

var httpURL = regexp.MustCompile(`^https?://`)

// Publisher runs the publish pipeline.
// Implemented by *scheduler.Dispatcher.
type Publisher interface {
	PublishNow(ctx context.Context, id string) (*storage.NoteRecord, error)
	Tick(ctx context.Context) (scheduler.TickStats, error)
}

// MirrorReader reads the note mirror.
type MirrorReader interface {
	Notes() ([]*storage.NoteRecord, error)
	SyncedAt() (time.Time, error)
}

// MirrorSyncer refreshes the note mirror from the store.
type MirrorSyncer interface {
	Sync(ctx context.Context) (int, error)
}

// NoteInput is the editable part of a note.
type NoteInput struct {
	Content           string               `json:"content"`
	Format            string               `json:"format"`
	Title             string               `json:"title"`
	Color             string               `json:"color"`
	CustomLinkPreview *storage.LinkPreview `json:"custom_link_preview"`
	ImageData         []string             `json:"image_data"`
}

// Validate checks the input field by field.
func (in NoteInput) Validate(ctx context.Context) error {
	return fromValidation(validation.ValidateStructWithContext(ctx, &in,
		validation.Field(&in.Format, validation.In(FormatHTML, FormatMarkdown)),
		validation.Field(&in.Title, validation.Length(0, 200)),
		validation.Field(&in.Color, validation.Length(0, 32)),
		validation.Field(&in.CustomLinkPreview, validation.By(validateLinkPreview)),
		validation.Field(&in.ImageData,
			validation.Length(0, storage.MaxImages),
			validation.Each(validation.Required)),
	))
}

func validateLinkPreview(value interface{}) error {
	p, _ := value.(*storage.LinkPreview)
	if p == nil {
		return nil
	}
	return validation.ValidateStruct(p,
		validation.Field(&p.URL, validation.Required, validation.Match(httpURL).Error("must be an http(s) URL"), is.URL),
		validation.Field(&p.Title, validation.Length(0, 300)),
		validation.Field(&p.Image, validation.Match(httpURL).Error("must be an http(s) URL")),
	)
}

// ScheduleInput sets a note's publish time.
type ScheduleInput struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// Validate requires a publish time. A time in the past publishes on the next tick.
func (in ScheduleInput) Validate(ctx context.Context) error {
	return fromValidation(validation.ValidateStructWithContext(ctx, &in,
		validation.Field(&in.ScheduledFor, validation.Required),
	))
}

// MirrorSnapshot is the mirror's content and when it was last synced.
type MirrorSnapshot struct {
	Notes    []*storage.NoteRecord
	SyncedAt time.Time
}

// NoteService manages notes and their publication state.
type NoteService interface {
	List(ctx context.Context) ([]*storage.NoteRecord, error)
	Get(ctx context.Context, id string) (*storage.NoteRecord, error)
	Create(ctx context.Context, in NoteInput) (*storage.NoteRecord, error)
	Update(ctx context.Context, id string, in NoteInput) (*storage.NoteRecord, error)
	Delete(ctx context.Context, id string) error
	// Schedule moves a note to scheduled. Allowed from any status; a failure
	// reason is cleared.
	Schedule(ctx context.Context, id string, in ScheduleInput) (*storage.NoteRecord, error)
	// Unschedule moves a scheduled note back to draft.
	Unschedule(ctx context.Context, id string) (*storage.NoteRecord, error)
	// Retry moves a failed note back to draft, keeping its scheduled time.
	Retry(ctx context.Context, id string) (*storage.NoteRecord, error)
	// PostNow publishes a note immediately.
	PostNow(ctx context.Context, id string) (*storage.NoteRecord, error)
	// Tick runs the scheduler once.
	Tick(ctx context.Context) (scheduler.TickStats, error)
	MirrorNotes(ctx context.Context) (MirrorSnapshot, error)
	SyncMirror(ctx context.Context) (int, error)
}

// noteService implements NoteService.
type noteService struct {
	notes     storage.NoteStore
	publisher Publisher
	mirror    MirrorReader
	syncer    MirrorSyncer
	logger    *slog.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes storage.NoteStore, publisher Publisher, mirror MirrorReader, syncer MirrorSyncer) NoteService {
	return &noteService{
		notes:     notes,
		publisher: publisher,
		mirror:    mirror,
		syncer:    syncer,
		logger:    slog.Default(),
	}
}

func (s *noteService) List(ctx context.Context) ([]*storage.NoteRecord, error) {
	notes, err := s.notes.GetAll(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list notes")
	}
	return notes, nil
}

func (s *noteService) Get(ctx context.Context, id string) (*storage.NoteRecord, error) {
	note, err := s.notes.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, WrapError(err, "failed to load note")
	}
	return note, nil
}

func (s *noteService) Create(ctx context.Context, in NoteInput) (*storage.NoteRecord, error) {
	logger := contextutil.LoggerFromContextOr(ctx, s.logger)

	note := &storage.NoteRecord{Status: storage.StatusDraft}
	if err := s.apply(ctx, note, in); err != nil {
		return nil, err
	}
	if err := s.notes.Upsert(ctx, note); err != nil {
		return nil, WrapError(err, "failed to save note")
	}

	logger.InfoContext(ctx, "note created", "note_id", note.ID, "images", len(note.ImageData))
	return note, nil
}

func (s *noteService) Update(ctx context.Context, id string, in NoteInput) (*storage.NoteRecord, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, note, in); err != nil {
		return nil, err
	}
	return s.save(ctx, note, "note updated")
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return WrapError(err, "failed to delete note")
	}
	contextutil.LoggerFromContextOr(ctx, s.logger).InfoContext(ctx, "note deleted", "note_id", id)
	return nil
}

func (s *noteService) Schedule(ctx context.Context, id string, in ScheduleInput) (*storage.NoteRecord, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	when := in.ScheduledFor.UTC()
	note.Status = storage.StatusScheduled
	note.ScheduledFor = &when
	note.FailureReason = ""
	return s.save(ctx, note, "note scheduled")
}

func (s *noteService) Unschedule(ctx context.Context, id string) (*storage.NoteRecord, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Status != storage.StatusScheduled {
		return nil, fmt.Errorf("%w: cannot unschedule a %s note", ErrInvalidTransition, note.Status)
	}

	note.Status = storage.StatusDraft
	note.ScheduledFor = nil
	return s.save(ctx, note, "note unscheduled")
}

func (s *noteService) Retry(ctx context.Context, id string) (*storage.NoteRecord, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Status != storage.StatusFailed {
		return nil, fmt.Errorf("%w: cannot retry a %s note", ErrInvalidTransition, note.Status)
	}

	note.Status = storage.StatusDraft
	note.FailureReason = ""
	return s.save(ctx, note, "note reset for retry")
}

func (s *noteService) PostNow(ctx context.Context, id string) (*storage.NoteRecord, error) {
	note, err := s.publisher.PublishNow(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: note %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, WrapError(err, "failed to publish note")
	}
	return note, nil
}

func (s *noteService) Tick(ctx context.Context) (scheduler.TickStats, error) {
	stats, err := s.publisher.Tick(ctx)
	if err != nil {
		return stats, WrapError(err, "tick failed")
	}
	return stats, nil
}

func (s *noteService) MirrorNotes(ctx context.Context) (MirrorSnapshot, error) {
	notes, err := s.mirror.Notes()
	if err != nil {
		return MirrorSnapshot{}, WrapError(err, "failed to read mirror")
	}
	syncedAt, err := s.mirror.SyncedAt()
	if err != nil {
		return MirrorSnapshot{}, WrapError(err, "failed to read mirror sync time")
	}
	return MirrorSnapshot{Notes: notes, SyncedAt: syncedAt}, nil
}

func (s *noteService) SyncMirror(ctx context.Context) (int, error) {
	n, err := s.syncer.Sync(ctx)
	if err != nil {
		return 0, WrapError(err, "mirror sync failed")
	}
	return n, nil
}

// apply validates in and copies it onto note, rendering Markdown to HTML.
func (s *noteService) apply(ctx context.Context, note *storage.NoteRecord, in NoteInput) error {
	if in.Format == "" {
		in.Format = FormatHTML
	}
	if err := in.Validate(ctx); err != nil {
		return err
	}

	body := in.Content
	if in.Format == FormatMarkdown {
		html, err := content.RenderMarkdown(in.Content)
		if err != nil {
			return &ValidationError{Field: "content", Message: err.Error()}
		}
		body = html
	}

	note.Content = body
	note.Title = in.Title
	note.Color = in.Color
	note.CustomLinkPreview = in.CustomLinkPreview
	note.ImageData = in.ImageData
	return nil
}

func (s *noteService) save(ctx context.Context, note *storage.NoteRecord, msg string) (*storage.NoteRecord, error) {
	if err := s.notes.Upsert(ctx, note); err != nil {
		return nil, WrapError(err, "failed to save note")
	}
	contextutil.LoggerFromContextOr(ctx, s.logger).InfoContext(ctx, msg, "note_id", note.ID, "status", note.Status)
	return note, nil
}
